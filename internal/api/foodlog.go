package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharjeelz/famories/internal/models"
)

// ListFoodLogs handles GET /foodlog. An optional ?name= query filters
// by family member name; anything else lists everything.
func (h *Handler) ListFoodLogs(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	var (
		logs []models.FoodLog
		err  error
	)
	if name == "" || name == "All" {
		logs, err = h.foodlog.List()
	} else {
		logs, err = h.foodlog.ListByName(name)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FoodLogListResponse{Logs: logs, Total: len(logs)})
}

// GetFoodLog handles GET /foodlog/{id}.
func (h *Handler) GetFoodLog(w http.ResponseWriter, r *http.Request) {
	l, err := h.foodlog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CreateFoodLog handles POST /foodlog.
func (h *Handler) CreateFoodLog(w http.ResponseWriter, r *http.Request) {
	var req FoodLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	l, err := h.foodlog.Create(models.FoodLog{
		Name:     req.Name,
		Food:     req.Food,
		Reaction: req.Reaction,
		MealTime: req.MealTime,
		Date:     req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// UpdateFoodLog handles PUT /foodlog/{id}.
func (h *Handler) UpdateFoodLog(w http.ResponseWriter, r *http.Request) {
	var req FoodLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	l, err := h.foodlog.Update(models.FoodLog{
		ID:       chi.URLParam(r, "id"),
		Name:     req.Name,
		Food:     req.Food,
		Reaction: req.Reaction,
		MealTime: req.MealTime,
		Date:     req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// DeleteFoodLog handles DELETE /foodlog/{id}. Idempotent.
func (h *Handler) DeleteFoodLog(w http.ResponseWriter, r *http.Request) {
	if err := h.foodlog.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Allergens handles GET /foodlog/allergens: food frequencies across
// entries with a non-empty reaction.
func (h *Handler) Allergens(w http.ResponseWriter, r *http.Request) {
	counts, err := h.foodlog.AllergenCounts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AllergenResponse{Allergens: counts})
}
