package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharjeelz/famories/internal/models"
)

// ListMembers handles GET /family.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.family.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MemberListResponse{Members: members, Total: len(members)})
}

// GetMember handles GET /family/{id}.
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.family.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// CreateMember handles POST /family.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := h.family.Create(models.FamilyMember{
		Name:     req.Name,
		Relation: req.Relation,
		Age:      req.Age,
		Hobbies:  req.Hobbies,
		Photo:    req.Photo,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// UpdateMember handles PUT /family/{id}: full-record replace keyed by
// the URL id. Renaming a member does not touch memories or food logs
// that reference the old name; those references simply go stale.
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := h.family.Update(models.FamilyMember{
		ID:        chi.URLParam(r, "id"),
		Name:      req.Name,
		Relation:  req.Relation,
		Age:       req.Age,
		Hobbies:   req.Hobbies,
		Photo:     req.Photo,
		Relations: req.Relations,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteMember handles DELETE /family/{id}. Edges on other members that
// point at the deleted id remain stored and are filtered out of the
// graph view only.
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.family.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LinkMembers handles POST /family/link.
func (h *Handler) LinkMembers(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.From == "" || req.To == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("from and to are required"))
		return
	}
	if err := h.family.Link(req.From, req.To, req.Type); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Graph handles GET /family/graph.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	nodes, edges, err := h.family.Graph()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GraphResponse{Nodes: nodes, Edges: edges})
}
