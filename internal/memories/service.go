// Package memories implements the memory collection: journal entries
// with emotions, tags, people, and location.
package memories

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/store"
)

// Service wraps the memory record store with typed construction and
// boundary validation.
type Service struct {
	store *store.Store[models.Memory]
}

// NewService creates a memory service over the given store.
func NewService(s *store.Store[models.Memory]) *Service {
	return &Service{store: s}
}

// List returns every memory in stored order.
func (s *Service) List() ([]models.Memory, error) {
	return s.store.Load()
}

// Get returns one memory by id.
func (s *Service) Get(id string) (models.Memory, error) {
	return s.store.Get(id)
}

// Create assigns a fresh id, normalizes list fields, validates, and
// appends the memory.
func (s *Service) Create(m models.Memory) (models.Memory, error) {
	m.ID = uuid.NewString()
	normalize(&m)
	if err := m.Validate(); err != nil {
		return models.Memory{}, err
	}
	if err := s.store.Append(m); err != nil {
		return models.Memory{}, err
	}
	return m, nil
}

// Update replaces the stored memory with the same id. The existing id is
// preserved; an unknown id leaves the collection unchanged without error.
func (s *Service) Update(m models.Memory) (models.Memory, error) {
	normalize(&m)
	if err := m.Validate(); err != nil {
		return models.Memory{}, err
	}
	if err := s.store.Update(m); err != nil {
		return models.Memory{}, err
	}
	return m, nil
}

// Delete removes the memory with the given id. Idempotent.
func (s *Service) Delete(id string) error {
	return s.store.Delete(id)
}

// normalize trims list tokens and drops empty tags, keeping order and
// any duplicate emotions as entered.
func normalize(m *models.Memory) {
	emotions := make([]string, 0, len(m.Emotion))
	for _, e := range m.Emotion {
		emotions = append(emotions, strings.TrimSpace(e))
	}
	m.Emotion = emotions

	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	m.Tags = tags

	if m.People == nil {
		m.People = []string{}
	}
}

// ContextText serializes all memories plus a name keyed family summary
// into the flat text block the assistant receives. Returns "" when no
// memories are stored.
func ContextText(mems []models.Memory, family []models.FamilyMember) string {
	if len(mems) == 0 {
		return ""
	}
	roster := familySummary(family)
	blocks := make([]string, 0, len(mems))
	for _, m := range mems {
		blocks = append(blocks, fmt.Sprintf(
			"Title: %s\nDate: %s\nDesc: %s\nEmotions: %s\nPeople Involved: %s",
			m.Title, m.Date, m.Description, strings.Join(m.Emotion, ", "), roster))
	}
	return strings.Join(blocks, "\n\n")
}

// InsightText is the variant used for summarization; it omits the family
// roster from each block.
func InsightText(mems []models.Memory) string {
	if len(mems) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(mems))
	for _, m := range mems {
		blocks = append(blocks, fmt.Sprintf(
			"Title: %s\nDate: %s\nDesc: %s\nEmotions: %s",
			m.Title, m.Date, m.Description, strings.Join(m.Emotion, ", ")))
	}
	return strings.Join(blocks, "\n\n")
}

func familySummary(family []models.FamilyMember) string {
	if len(family) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(family))
	for _, f := range family {
		hobbies := strings.Join(f.Hobbies, ", ")
		if hobbies == "" {
			hobbies = "None"
		}
		parts = append(parts, fmt.Sprintf("%s (relation: %s, age: %d, hobbies: %s)",
			f.Name, f.Relation, f.Age, hobbies))
	}
	return strings.Join(parts, "; ")
}
