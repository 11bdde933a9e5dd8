// Package family implements the family roster: members with photos,
// hobbies, and directed relationship edges, plus the graph view derived
// from those edges.
package family

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sharjeelz/famories/internal/apperr"
	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/store"
)

// Service wraps the family record store with roster operations, photo
// attachment, and relationship linking.
type Service struct {
	store    *store.Store[models.FamilyMember]
	photoDir string
}

// NewService creates a family service. photoDir is where uploaded photos
// are written; it is created on first upload.
func NewService(s *store.Store[models.FamilyMember], photoDir string) *Service {
	return &Service{store: s, photoDir: photoDir}
}

// List returns every member in stored order.
func (s *Service) List() ([]models.FamilyMember, error) {
	return s.store.Load()
}

// Get returns one member by id.
func (s *Service) Get(id string) (models.FamilyMember, error) {
	return s.store.Get(id)
}

// Create assigns a fresh id, validates, and appends the member. Names
// are not required to be unique; they are weak keys for other
// collections.
func (s *Service) Create(m models.FamilyMember) (models.FamilyMember, error) {
	m.ID = uuid.NewString()
	normalize(&m)
	if err := m.Validate(); err != nil {
		return models.FamilyMember{}, err
	}
	if err := s.store.Append(m); err != nil {
		return models.FamilyMember{}, err
	}
	return m, nil
}

// Update replaces the stored member with the same id, preserving the id.
// Relationship edges carried on the incoming record replace the stored
// ones wholesale, mirroring the full-record edit form.
func (s *Service) Update(m models.FamilyMember) (models.FamilyMember, error) {
	normalize(&m)
	if err := m.Validate(); err != nil {
		return models.FamilyMember{}, err
	}
	if err := s.store.Update(m); err != nil {
		return models.FamilyMember{}, err
	}
	return m, nil
}

// Delete removes the member with the given id. Edges on other members
// that point at the deleted id are left in place: dangling edges are
// tolerated in storage and filtered only when the graph is rendered.
func (s *Service) Delete(id string) error {
	return s.store.Delete(id)
}

// SavePhoto stores an uploaded photo as "<token>_<original-name>" under
// the photo directory and returns the stored filename. The original name
// is reduced to its base to block traversal.
func (s *Service) SavePhoto(original string, r io.Reader) (string, error) {
	base := filepath.Base(filepath.Clean(original))
	if base == "." || base == string(filepath.Separator) || strings.Contains(base, "..") {
		return "", fmt.Errorf("family: invalid photo name: %s", original)
	}
	if err := os.MkdirAll(s.photoDir, 0o755); err != nil {
		return "", fmt.Errorf("family: mkdir photos: %w", err)
	}
	name := uuid.NewString() + "_" + base
	dst, err := os.Create(filepath.Join(s.photoDir, name))
	if err != nil {
		return "", fmt.Errorf("family: create photo: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("family: write photo: %w", err)
	}
	return name, nil
}

// AttachPhoto saves the photo and records its filename on the member.
func (s *Service) AttachPhoto(id, original string, r io.Reader) (models.FamilyMember, error) {
	m, err := s.store.Get(id)
	if err != nil {
		return models.FamilyMember{}, err
	}
	name, err := s.SavePhoto(original, r)
	if err != nil {
		return models.FamilyMember{}, err
	}
	m.Photo = name
	if err := s.store.Update(m); err != nil {
		return models.FamilyMember{}, err
	}
	return m, nil
}

// Link appends a directed edge {to, type} to the source member's
// relations unless an edge with identical target and type already
// exists. The dedupe is structural and direction-sensitive: A→B and
// B→A are distinct edges, and nothing prevents symmetric or
// contradictory pairs.
func (s *Service) Link(fromID, toID, edgeType string) error {
	edge := models.RelationEdge{To: toID, Type: edgeType}
	if err := edge.Validate(); err != nil {
		return err
	}
	if fromID == toID {
		return fmt.Errorf("family: cannot link a member to itself")
	}
	members, err := s.store.Load()
	if err != nil {
		return err
	}
	found := false
	for i, m := range members {
		if m.ID != fromID {
			continue
		}
		found = true
		dup := false
		for _, e := range m.Relations {
			if e == edge {
				dup = true
				break
			}
		}
		if !dup {
			members[i].Relations = append(members[i].Relations, edge)
		}
	}
	if !found {
		return apperr.ErrNotFound
	}
	return s.store.Replace(members)
}

func normalize(m *models.FamilyMember) {
	hobbies := make([]string, 0, len(m.Hobbies))
	for _, h := range m.Hobbies {
		h = strings.TrimSpace(h)
		if h != "" {
			hobbies = append(hobbies, h)
		}
	}
	m.Hobbies = hobbies
}
