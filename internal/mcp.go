package internal

import (
	"fmt"
	"os"

	"github.com/sharjeelz/famories/internal/family"
	"github.com/sharjeelz/famories/internal/foodlog"
	"github.com/sharjeelz/famories/internal/mcpserver"
	"github.com/sharjeelz/famories/internal/memories"
	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/store"
)

// ServeMCP exposes the journal over the Model Context Protocol on
// stdio, sharing the same data directory as the HTTP server. Stdio
// transport owns stdout, so no logger is installed here.
func ServeMCP(cfg *Config) error {
	if err := os.MkdirAll(cfg.Data.Path, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	memSvc := memories.NewService(store.New[models.Memory](cfg.Data.MemoriesFile()))
	famSvc := family.NewService(store.New[models.FamilyMember](cfg.Data.FamilyFile()), cfg.Data.PhotoDir())
	foodSvc := foodlog.NewService(store.New[models.FoodLog](cfg.Data.FoodLogFile()))

	return mcpserver.New(memSvc, famSvc, foodSvc).ServeStdio()
}
