package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"checkflow/internal/model"
	"checkflow/internal/service"
)

// SessionHandler handles questionnaire session endpoints
type SessionHandler struct {
	sessionSvc    *service.SessionService
	suggestionSvc *service.SuggestionService
	checklistSvc  *service.ChecklistService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessionSvc *service.SessionService,
	suggestionSvc *service.SuggestionService,
	checklistSvc *service.ChecklistService,
) *SessionHandler {
	return &SessionHandler{
		sessionSvc:    sessionSvc,
		suggestionSvc: suggestionSvc,
		checklistSvc:  checklistSvc,
	}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Create(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Get handles GET /v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CurrentQuestion handles GET /v1/sessions/{id}/question/current
func (h *SessionHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.sessionSvc.CurrentQuestion(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"done":     question == nil,
		"question": question,
	}
	writeJSON(w, http.StatusOK, response)
}

// AnswerRequest is the request body for answering a question. Value is
// a bare JSON scalar or string array.
type AnswerRequest struct {
	QuestionID string          `json:"questionId"`
	Value      json.RawMessage `json:"value"`
}

// Answer handles POST /v1/sessions/{id}/answers
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	value, err := model.ParseValue(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessionSvc.Answer(r.Context(), sessionID, req.QuestionID, value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// GoBack handles POST /v1/sessions/{id}/back
func (h *SessionHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.GoBack(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Progress handles GET /v1/sessions/{id}/progress
func (h *SessionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.sessionSvc.Progress(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Suggestions handles GET /v1/sessions/{id}/suggestions
func (h *SessionHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	set, err := h.suggestionSvc.ForSession(r.Context(), session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// GenerateChecklist handles POST /v1/sessions/{id}/checklist
func (h *SessionHandler) GenerateChecklist(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.checklistSvc.GenerateChecklist(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, checklist)
}

// writeServiceError maps the service error taxonomy onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrSessionNotComplete):
		writeError(w, http.StatusConflict, "session is not complete")
	case service.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
