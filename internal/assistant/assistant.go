// Package assistant adapts the journal to an external language model:
// question answering over memories, emotional-pattern summaries, and
// categorization of transcribed voice notes.
//
// The completion and speech backends sit behind capability interfaces so
// the rest of the application never touches the network directly and
// tests can substitute fakes.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sharjeelz/famories/internal/apperr"
	"github.com/sharjeelz/famories/internal/memories"
	"github.com/sharjeelz/famories/internal/models"
)

// Completer is the text-completion capability: one system instruction,
// one user prompt, text out. Failures map to apperr.ErrServiceUnavailable.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Transcriber is the speech-to-text capability. An unrecognizable
// utterance fails with apperr.ErrUnintelligibleAudio; backend failures
// with apperr.ErrServiceUnavailable.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

const (
	askSystemPrompt = "You are the user's digital memory. Respond as if you are their past self, " +
		"drawing only from the memory log below. and dont say anything if you dont find the data, " +
		"simply say did not find what you are looking for, dont tell that you are reading from a log, " +
		"just be straightforward."

	insightSystemPrompt = "You are a helpful assistant summarizing personal life memories into deep emotional insights."
)

// categorizeSystemPrompt pins the emotion vocabulary to the journal's
// own set so a confirmed draft passes boundary validation.
var categorizeSystemPrompt = "Categorize the user's memory. Return JSON with: title, emotions " +
	"(list, using only these values: " + strings.Join(models.Emotions, ", ") + "), " +
	"tags (list), people (list of names if mentioned), and a short summary."

// MemorySource provides the journal snapshots the assistant reads from.
type MemorySource interface {
	List() ([]models.Memory, error)
}

// FamilySource provides the roster snapshot for the ask context.
type FamilySource interface {
	List() ([]models.FamilyMember, error)
}

// Assistant wires the capabilities to the collections.
type Assistant struct {
	completer   Completer
	transcriber Transcriber
	mems        MemorySource
	family      FamilySource
}

// New creates an assistant. transcriber may be nil when the voice flow
// is disabled.
func New(c Completer, t Transcriber, mems MemorySource, family FamilySource) *Assistant {
	return &Assistant{completer: c, transcriber: t, mems: mems, family: family}
}

// Ask forwards the user's question together with all memories and a
// family summary. An empty memory collection short-circuits with
// apperr.ErrNoMemories before any service call. The reply is returned
// verbatim; there is no retry.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	mems, err := a.mems.List()
	if err != nil {
		return "", err
	}
	if len(mems) == 0 {
		return "", apperr.ErrNoMemories
	}
	family, err := a.family.List()
	if err != nil {
		return "", err
	}
	user := fmt.Sprintf("Here are my memories:%sQuestion: %s",
		memories.ContextText(mems, family), question)
	return a.completer.Complete(ctx, askSystemPrompt, user)
}

// Summarize asks for emotional patterns, milestones, and recurring
// themes across all memories. Callers cache the result per session; it
// is never persisted.
func (a *Assistant) Summarize(ctx context.Context) (string, error) {
	mems, err := a.mems.List()
	if err != nil {
		return "", err
	}
	if len(mems) == 0 {
		return "", apperr.ErrNoMemories
	}
	user := fmt.Sprintf("Here are my life memories:%sPlease summarize key emotional patterns, "+
		"milestones, recurring people or themes.", memories.InsightText(mems))
	return a.completer.Complete(ctx, insightSystemPrompt, user)
}

// Draft is the parsed categorization of a transcribed voice note,
// presented for confirmation before a Memory is created from it.
type Draft struct {
	Title      string   `json:"title"`
	Emotions   []string `json:"emotions"`
	Tags       []string `json:"tags"`
	People     []string `json:"people"`
	Summary    string   `json:"summary"`
	Transcript string   `json:"transcript"`
}

// Memory builds the journal entry a confirmed draft turns into: the
// description is the raw transcript and the date is today. The id is
// assigned by the collection on create.
func (d Draft) Memory() models.Memory {
	return models.Memory{
		Title:       orUntitled(d.Title),
		Description: d.Transcript,
		Date:        models.Today(),
		Emotion:     emptyIfNil(d.Emotions),
		Tags:        emptyIfNil(d.Tags),
		People:      emptyIfNil(d.People),
		Location:    "",
	}
}

// CaptureVoice transcribes the audio and asks the completion service to
// categorize it. A reply that does not parse as the expected JSON fails
// with apperr.ErrMalformedAIResponse; nothing is written to any
// collection on failure.
func (a *Assistant) CaptureVoice(ctx context.Context, audio io.Reader, filename string) (Draft, error) {
	if a.transcriber == nil {
		return Draft{}, fmt.Errorf("assistant: no transcriber configured: %w", apperr.ErrServiceUnavailable)
	}
	transcript, err := a.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return Draft{}, err
	}
	return a.Categorize(ctx, transcript)
}

// Categorize asks the completion service to structure a transcript into
// a Draft.
func (a *Assistant) Categorize(ctx context.Context, transcript string) (Draft, error) {
	reply, err := a.completer.Complete(ctx, categorizeSystemPrompt, "Memory: "+transcript)
	if err != nil {
		return Draft{}, err
	}
	var d Draft
	if err := json.Unmarshal([]byte(stripFences(reply)), &d); err != nil {
		return Draft{}, fmt.Errorf("assistant: parse categorization: %w: %v", apperr.ErrMalformedAIResponse, err)
	}
	d.Emotions = canonicalEmotions(d.Emotions)
	d.Transcript = transcript
	return d, nil
}

// canonicalEmotions maps the model's emotion labels onto the journal's
// vocabulary, case-insensitively, and drops anything outside it. The
// model does not always respect the prompt's value list.
func canonicalEmotions(raw []string) []string {
	var out []string
	for _, e := range raw {
		for _, known := range models.Emotions {
			if strings.EqualFold(strings.TrimSpace(e), known) {
				out = append(out, known)
				break
			}
		}
	}
	return out
}

// stripFences tolerates replies wrapped in Markdown code fences.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func orUntitled(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}
	return title
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
