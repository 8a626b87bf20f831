package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"checkflow/internal/model"
	"checkflow/internal/repository"
)

// ChecklistHandler exposes CRUD over persisted checklists. Once
// materialized, checklists belong to the user and are edited freely.
type ChecklistHandler struct {
	repo repository.ChecklistRepo
}

// NewChecklistHandler creates a new checklist handler
func NewChecklistHandler(repo repository.ChecklistRepo) *ChecklistHandler {
	return &ChecklistHandler{repo: repo}
}

// List handles GET /v1/checklists
func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"checklists": checklists})
}

// Get handles GET /v1/checklists/{checklistId}
func (h *ChecklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.repo.GetByID(r.Context(), mux.Vars(r)["checklistId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if checklist == nil {
		writeError(w, http.StatusNotFound, "checklist not found")
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

// Update handles PUT /v1/checklists/{checklistId}
func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	checklistID := mux.Vars(r)["checklistId"]

	existing, err := h.repo.GetByID(r.Context(), checklistID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "checklist not found")
		return
	}

	var checklist model.Checklist
	if err := json.NewDecoder(r.Body).Decode(&checklist); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	checklist.ID = checklistID
	checklist.CreatedAt = existing.CreatedAt

	if err := h.repo.Update(r.Context(), &checklist); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

// Delete handles DELETE /v1/checklists/{checklistId}
func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), mux.Vars(r)["checklistId"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
