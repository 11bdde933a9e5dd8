// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the journal to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sharjeelz/famories/internal/family"
	"github.com/sharjeelz/famories/internal/foodlog"
	"github.com/sharjeelz/famories/internal/memories"
	"github.com/sharjeelz/famories/internal/models"
)

// Server wraps the MCP server with journal tools.
type Server struct {
	mcp  *server.MCPServer
	mem  *memories.Service
	fam  *family.Service
	food *foodlog.Service
}

// New creates a new MCP server with all journal tools registered.
func New(mem *memories.Service, fam *family.Service, food *foodlog.Service) *Server {
	s := &Server{mem: mem, fam: fam, food: food}

	s.mcp = server.NewMCPServer(
		"Famories",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_memories",
		mcp.WithDescription("List every recorded memory with its emotions, tags, people, and location."),
	), s.listMemories)

	s.mcp.AddTool(mcp.NewTool("search_memories",
		mcp.WithDescription("Find memories whose title, description, tags, or people contain the query (case-insensitive substring scan)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to look for")),
	), s.searchMemories)

	s.mcp.AddTool(mcp.NewTool("add_memory",
		mcp.WithDescription("Record a new memory. Follow the journal format contract "+
			"(see the famories://journal-format resource) for emotions and dates."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short title")),
		mcp.WithString("description", mcp.Required(), mcp.Description("What happened")),
		mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD, defaults to today")),
		mcp.WithString("emotions", mcp.Description("Comma-separated emotions from the allowed set")),
		mcp.WithString("tags", mcp.Description("Comma-separated free-text tags")),
		mcp.WithString("people", mcp.Description("Comma-separated family member names")),
		mcp.WithString("location", mcp.Description("Where it happened")),
	), s.addMemory)

	s.mcp.AddTool(mcp.NewTool("list_family",
		mcp.WithDescription("List the family roster with relations, ages, hobbies, and relationship edges."),
	), s.listFamily)

	s.mcp.AddTool(mcp.NewTool("log_food",
		mcp.WithDescription("Record a food intake and any reaction for a family member."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Family member name")),
		mcp.WithString("food", mcp.Required(), mcp.Description("Food item")),
		mcp.WithString("reaction", mcp.Description("Reaction or symptoms, empty for none")),
		mcp.WithString("meal_time", mcp.Required(), mcp.Description("Breakfast, Lunch, Dinner, or Snack")),
		mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD, defaults to today")),
	), s.logFood)

	// Resource: journal format contract.
	s.mcp.AddResource(
		mcp.NewResource("famories://journal-format", "Journal Format Contract",
			mcp.WithResourceDescription("Record shapes and allowed values for the three journal collections."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readJournalFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listMemories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mems, err := s.mem.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(mems, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchMemories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mems, err := s.mem.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q := strings.ToLower(query)
	var hits []models.Memory
	for _, m := range mems {
		if memoryMatches(m, q) {
			hits = append(hits, m)
		}
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText("no memories matched"), nil
	}
	out, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func memoryMatches(m models.Memory, q string) bool {
	if strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Description), q) ||
		strings.Contains(strings.ToLower(m.Location), q) {
		return true
	}
	for _, t := range m.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	for _, p := range m.People {
		if strings.Contains(strings.ToLower(p), q) {
			return true
		}
	}
	return false
}

func (s *Server) addMemory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	description, err := req.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	date := req.GetString("date", models.Today())
	m, err := s.mem.Create(models.Memory{
		Title:       title,
		Description: description,
		Date:        date,
		Emotion:     splitList(req.GetString("emotions", "")),
		Tags:        splitList(req.GetString("tags", "")),
		People:      splitList(req.GetString("people", "")),
		Location:    req.GetString("location", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("recorded memory %s: %s", m.ID, m.Title)), nil
}

func (s *Server) listFamily(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	members, err := s.fam.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(members, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) logFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	food, err := req.RequireString("food")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mealTime, err := req.RequireString("meal_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l, err := s.food.Create(models.FoodLog{
		Name:     name,
		Food:     food,
		Reaction: req.GetString("reaction", ""),
		MealTime: mealTime,
		Date:     req.GetString("date", models.Today()),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("logged %s for %s", l.Food, l.Name)), nil
}

func (s *Server) readJournalFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "famories://journal-format",
			MIMEType: "text/markdown",
			Text:     JournalFormatContract,
		},
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
