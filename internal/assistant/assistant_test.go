package assistant

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/sharjeelz/famories/internal/apperr"
	"github.com/sharjeelz/famories/internal/models"
)

type fakeCompleter struct {
	calls  int
	system string
	user   string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ io.Reader, _ string) (string, error) {
	return f.text, f.err
}

type memorySource []models.Memory

func (m memorySource) List() ([]models.Memory, error) { return m, nil }

type familySource []models.FamilyMember

func (f familySource) List() ([]models.FamilyMember, error) { return f, nil }

func TestAskEmptyCollectionShortCircuits(t *testing.T) {
	fc := &fakeCompleter{reply: "should not be called"}
	a := New(fc, nil, memorySource{}, familySource{})

	_, err := a.Ask(context.Background(), "What did I enjoy?")
	if !errors.Is(err, apperr.ErrNoMemories) {
		t.Fatalf("err = %v, want ErrNoMemories", err)
	}
	if fc.calls != 0 {
		t.Errorf("service called %d times, want 0", fc.calls)
	}
}

func TestAskForwardsContextAndQuestion(t *testing.T) {
	fc := &fakeCompleter{reply: "you loved the coast"}
	mems := memorySource{{Title: "Beach trip", Date: "2023-07-01", Emotion: []string{"Happy"}}}
	fam := familySource{{Name: "Ana", Relation: "Myself", Age: 30}}
	a := New(fc, nil, mems, fam)

	answer, err := a.Ask(context.Background(), "What did I enjoy most?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "you loved the coast" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(fc.user, "Beach trip") {
		t.Errorf("prompt missing memory: %q", fc.user)
	}
	if !strings.Contains(fc.user, "Question: What did I enjoy most?") {
		t.Errorf("prompt missing question: %q", fc.user)
	}
	if !strings.Contains(fc.system, "past self") {
		t.Errorf("unexpected system prompt: %q", fc.system)
	}
}

func TestAskServiceFailure(t *testing.T) {
	fc := &fakeCompleter{err: apperr.ErrServiceUnavailable}
	a := New(fc, nil, memorySource{{Title: "x", Date: "2024-01-01"}}, familySource{})

	if _, err := a.Ask(context.Background(), "q"); !errors.Is(err, apperr.ErrServiceUnavailable) {
		t.Errorf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestSummarize(t *testing.T) {
	fc := &fakeCompleter{reply: "mostly joyful"}
	a := New(fc, nil, memorySource{{Title: "x", Date: "2024-01-01"}}, familySource{})

	summary, err := a.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != "mostly joyful" {
		t.Errorf("summary = %q", summary)
	}
	if !strings.Contains(fc.user, "emotional patterns") {
		t.Errorf("prompt = %q", fc.user)
	}
}

func TestCategorizeParsesReply(t *testing.T) {
	fc := &fakeCompleter{reply: `{"title":"Park day","emotions":["Happy"],"tags":["outdoors"],"people":["Leo"],"summary":"A day out"}`}
	a := New(fc, nil, memorySource{}, familySource{})

	d, err := a.Categorize(context.Background(), "we went to the park")
	if err != nil {
		t.Fatalf("Categorize: %v", err)
	}
	if d.Title != "Park day" || d.Summary != "A day out" {
		t.Errorf("draft = %+v", d)
	}
	if d.Transcript != "we went to the park" {
		t.Errorf("transcript = %q", d.Transcript)
	}
}

func TestCategorizeToleratesCodeFences(t *testing.T) {
	fc := &fakeCompleter{reply: "```json\n{\"title\":\"Fenced\"}\n```"}
	a := New(fc, nil, memorySource{}, familySource{})

	d, err := a.Categorize(context.Background(), "t")
	if err != nil {
		t.Fatalf("Categorize: %v", err)
	}
	if d.Title != "Fenced" {
		t.Errorf("title = %q", d.Title)
	}
}

func TestCategorizeMalformedReply(t *testing.T) {
	fc := &fakeCompleter{reply: "Sure! Here is the categorization you asked for."}
	a := New(fc, nil, memorySource{}, familySource{})

	if _, err := a.Categorize(context.Background(), "t"); !errors.Is(err, apperr.ErrMalformedAIResponse) {
		t.Errorf("err = %v, want ErrMalformedAIResponse", err)
	}
}

func TestCategorizeCanonicalizesEmotions(t *testing.T) {
	fc := &fakeCompleter{reply: `{"title":"Park day","emotions":["joyful"," happy ","Grateful"]}`}
	a := New(fc, nil, memorySource{}, familySource{})

	d, err := a.Categorize(context.Background(), "we went to the park")
	if err != nil {
		t.Fatalf("Categorize: %v", err)
	}
	// Labels outside the journal's vocabulary are dropped, the rest
	// are mapped onto the canonical casing, so the confirmed draft
	// passes boundary validation.
	if !reflect.DeepEqual(d.Emotions, []string{"Happy", "Grateful"}) {
		t.Errorf("emotions = %v", d.Emotions)
	}
	if !strings.Contains(fc.system, strings.Join(models.Emotions, ", ")) {
		t.Errorf("prompt does not name the allowed emotions: %q", fc.system)
	}
}

func TestCaptureVoice(t *testing.T) {
	fc := &fakeCompleter{reply: `{"title":"Park day","emotions":["Happy"]}`}
	ft := &fakeTranscriber{text: "we went to the park"}
	a := New(fc, ft, memorySource{}, familySource{})

	d, err := a.CaptureVoice(context.Background(), strings.NewReader("audio"), "note.wav")
	if err != nil {
		t.Fatalf("CaptureVoice: %v", err)
	}
	if d.Transcript != "we went to the park" {
		t.Errorf("transcript = %q", d.Transcript)
	}
	if !strings.Contains(fc.user, "Memory: we went to the park") {
		t.Errorf("prompt = %q", fc.user)
	}
}

func TestCaptureVoiceUnintelligible(t *testing.T) {
	fc := &fakeCompleter{}
	ft := &fakeTranscriber{err: apperr.ErrUnintelligibleAudio}
	a := New(fc, ft, memorySource{}, familySource{})

	_, err := a.CaptureVoice(context.Background(), strings.NewReader("x"), "note.wav")
	if !errors.Is(err, apperr.ErrUnintelligibleAudio) {
		t.Fatalf("err = %v, want ErrUnintelligibleAudio", err)
	}
	if fc.calls != 0 {
		t.Errorf("completion called %d times after failed transcription, want 0", fc.calls)
	}
}

func TestDraftMemory(t *testing.T) {
	d := Draft{
		Title:      "Park day",
		Emotions:   []string{"Happy"},
		Tags:       []string{"outdoors"},
		People:     []string{"Leo"},
		Transcript: "we went to the park",
	}
	m := d.Memory()
	if m.Title != "Park day" || m.Description != "we went to the park" {
		t.Errorf("memory = %+v", m)
	}
	if m.Date != models.Today() {
		t.Errorf("date = %q, want today", m.Date)
	}
	if m.Location != "" {
		t.Errorf("location = %q, want empty", m.Location)
	}
	if !reflect.DeepEqual(m.People, []string{"Leo"}) {
		t.Errorf("people = %v", m.People)
	}
}

func TestDraftMemoryDefaults(t *testing.T) {
	m := Draft{Transcript: "hmm"}.Memory()
	if m.Title != "Untitled" {
		t.Errorf("title = %q, want Untitled", m.Title)
	}
	if m.Emotion == nil || m.Tags == nil || m.People == nil {
		t.Error("list fields should be empty, not nil")
	}
}
