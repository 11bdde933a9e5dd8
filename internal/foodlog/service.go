// Package foodlog implements the food reaction log and its allergen
// frequency aggregation.
package foodlog

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/store"
)

// Service wraps the food log record store.
type Service struct {
	store *store.Store[models.FoodLog]
}

// NewService creates a food log service over the given store.
func NewService(s *store.Store[models.FoodLog]) *Service {
	return &Service{store: s}
}

// List returns every log entry in stored order.
func (s *Service) List() ([]models.FoodLog, error) {
	return s.store.Load()
}

// ListByName returns entries whose name matches exactly. Name is a weak
// reference to a family member; a filter on an unknown name simply
// matches nothing.
func (s *Service) ListByName(name string) ([]models.FoodLog, error) {
	logs, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	out := []models.FoodLog{}
	for _, l := range logs {
		if l.Name == name {
			out = append(out, l)
		}
	}
	return out, nil
}

// Get returns one entry by id.
func (s *Service) Get(id string) (models.FoodLog, error) {
	return s.store.Get(id)
}

// Create assigns a fresh id, validates, and appends the entry.
func (s *Service) Create(l models.FoodLog) (models.FoodLog, error) {
	l.ID = uuid.NewString()
	if err := l.Validate(); err != nil {
		return models.FoodLog{}, err
	}
	if err := s.store.Append(l); err != nil {
		return models.FoodLog{}, err
	}
	return l, nil
}

// Update replaces the stored entry with the same id; an unknown id is a
// silent no-op.
func (s *Service) Update(l models.FoodLog) (models.FoodLog, error) {
	if err := l.Validate(); err != nil {
		return models.FoodLog{}, err
	}
	if err := s.store.Update(l); err != nil {
		return models.FoodLog{}, err
	}
	return l, nil
}

// Delete removes the entry with the given id. Idempotent.
func (s *Service) Delete(id string) error {
	return s.store.Delete(id)
}

// AllergenCount is one row of the allergen frequency aggregation.
type AllergenCount struct {
	Food  string `json:"food"`
	Count int    `json:"count"`
}

// AllergenCounts counts foods across entries with a non-blank reaction,
// sorted by count descending, then food name for a stable order. Entries
// whose reaction is empty or whitespace are excluded.
func (s *Service) AllergenCounts() ([]AllergenCount, error) {
	logs, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, l := range logs {
		if strings.TrimSpace(l.Reaction) == "" {
			continue
		}
		counts[l.Food]++
	}
	out := make([]AllergenCount, 0, len(counts))
	for food, n := range counts {
		out = append(out, AllergenCount{Food: food, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Food < out[j].Food
	})
	return out, nil
}
