package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharjeelz/famories/internal/session"
)

// NewRouter creates a chi router with all API routes mounted. Unlock is
// the only unauthenticated route; everything else requires a session
// token minted by it. sseHandler, if non-nil, is mounted at GET /events
// inside the session group.
func NewRouter(h *Handler, sessions *session.Manager, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	// Session unlock (unauthenticated).
	r.Post("/session", h.Unlock)

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(sessions))

		r.Delete("/session", h.Logout)

		// Memories CRUD + voice capture.
		r.Get("/memories", h.ListMemories)
		r.Post("/memories", h.CreateMemory)
		r.Post("/memories/voice", h.VoiceMemory)
		r.Get("/memories/{id}", h.GetMemory)
		r.Put("/memories/{id}", h.UpdateMemory)
		r.Delete("/memories/{id}", h.DeleteMemory)

		// Family roster, relationships, graph.
		r.Get("/family", h.ListMembers)
		r.Post("/family", h.CreateMember)
		r.Post("/family/link", h.LinkMembers)
		r.Get("/family/graph", h.Graph)
		r.Get("/family/{id}", h.GetMember)
		r.Put("/family/{id}", h.UpdateMember)
		r.Delete("/family/{id}", h.DeleteMember)
		r.Post("/family/{id}/photo", h.UploadPhoto)

		// Food log + allergen aggregation.
		r.Get("/foodlog", h.ListFoodLogs)
		r.Post("/foodlog", h.CreateFoodLog)
		r.Get("/foodlog/allergens", h.Allergens)
		r.Get("/foodlog/{id}", h.GetFoodLog)
		r.Put("/foodlog/{id}", h.UpdateFoodLog)
		r.Delete("/foodlog/{id}", h.DeleteFoodLog)

		// Assistant.
		r.Post("/assistant/ask", h.Ask)
		r.Get("/assistant/insights", h.Insights)

		// SSE endpoint (protected by the same session middleware).
		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
