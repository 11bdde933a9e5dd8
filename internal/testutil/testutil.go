// Package testutil provides shared test helpers for setting up data
// directories and collection services.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/sharjeelz/famories/internal/family"
	"github.com/sharjeelz/famories/internal/foodlog"
	"github.com/sharjeelz/famories/internal/memories"
	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/store"
)

// TestMemories creates a memory service over a temp collection file.
func TestMemories(t *testing.T) *memories.Service {
	t.Helper()
	return memories.NewService(store.New[models.Memory](filepath.Join(t.TempDir(), "memories.json")))
}

// TestFamily creates a family service with a temp collection file and
// photo directory.
func TestFamily(t *testing.T) *family.Service {
	t.Helper()
	dir := t.TempDir()
	s := store.New[models.FamilyMember](filepath.Join(dir, "family.json"))
	return family.NewService(s, filepath.Join(dir, "family_photos"))
}

// TestFoodLog creates a food log service over a temp collection file.
func TestFoodLog(t *testing.T) *foodlog.Service {
	t.Helper()
	return foodlog.NewService(store.New[models.FoodLog](filepath.Join(t.TempDir(), "food_log.json")))
}
