package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/sharjeelz/famories/internal/apperr"
)

func TestUnlockCorrectPIN(t *testing.T) {
	m := NewManager("1234")
	s, err := m.Unlock("1234")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if s.Token == "" {
		t.Fatal("expected a token")
	}
	got, err := m.Get(s.Token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Token != s.Token {
		t.Error("Get resolved a different session")
	}
}

func TestUnlockWrongPIN(t *testing.T) {
	m := NewManager("1234")
	if _, err := m.Unlock("0000"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestGetUnknownToken(t *testing.T) {
	m := NewManager("1234")
	if _, err := m.Get("nope"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestSummaryCacheLifecycle(t *testing.T) {
	m := NewManager("1234")
	s, _ := m.Unlock("1234")

	m.SetSummary(s.Token, "mostly joyful")
	got, _ := m.Get(s.Token)
	if got.Summary != "mostly joyful" {
		t.Errorf("summary = %q", got.Summary)
	}

	// Logout discards the session and its cached summary.
	m.Logout(s.Token)
	if _, err := m.Get(s.Token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("err after logout = %v, want ErrUnauthorized", err)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	m := NewManager("1234")
	s, _ := m.Unlock("1234")

	snap, _ := m.Get(s.Token)
	m.SetSummary(s.Token, "fresh")

	// The snapshot taken before the write is unaffected; only a new
	// Get observes the update. Handlers therefore never share a
	// mutable session with concurrent writers.
	if snap.Summary != "" {
		t.Errorf("snapshot summary = %q, want empty", snap.Summary)
	}
	cur, _ := m.Get(s.Token)
	if cur.Summary != "fresh" {
		t.Errorf("summary = %q", cur.Summary)
	}

	// Mutating a snapshot never leaks into the manager's copy.
	cur.Summary = "scribbled"
	again, _ := m.Get(s.Token)
	if again.Summary != "fresh" {
		t.Errorf("summary after snapshot mutation = %q", again.Summary)
	}
}

func TestConcurrentSummaryAccess(t *testing.T) {
	m := NewManager("1234")
	s, _ := m.Unlock("1234")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.SetSummary(s.Token, "updated")
				if got, err := m.Get(s.Token); err == nil && got.Summary != "" && got.Summary != "updated" {
					t.Errorf("summary = %q", got.Summary)
				}
			}
		}()
	}
	wg.Wait()
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager("1234")
	a, _ := m.Unlock("1234")
	b, _ := m.Unlock("1234")

	m.SetSummary(a.Token, "for a only")
	gotB, _ := m.Get(b.Token)
	if gotB.Summary != "" {
		t.Errorf("summary leaked across sessions: %q", gotB.Summary)
	}
}
