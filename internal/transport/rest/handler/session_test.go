package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkflow/internal/cache"
	"checkflow/internal/catalog"
	"checkflow/internal/model"
	"checkflow/internal/service"
)

type stubChecklistRepo struct{}

func (stubChecklistRepo) Create(ctx context.Context, checklist *model.Checklist) error { return nil }
func (stubChecklistRepo) GetByID(ctx context.Context, id string) (*model.Checklist, error) {
	return nil, nil
}
func (stubChecklistRepo) List(ctx context.Context) ([]*model.Checklist, error) { return nil, nil }
func (stubChecklistRepo) Update(ctx context.Context, checklist *model.Checklist) error {
	return nil
}
func (stubChecklistRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestRouter() *mux.Router {
	templates := catalog.NewStaticTemplates(catalog.BuiltinTemplates())
	sessions := service.NewSessionService(cache.NewMemorySessionStore(), catalog.DefaultQuestions())
	suggestions := service.NewSuggestionService(service.DefaultWeights(), templates)
	checklists := service.NewChecklistService(sessions, templates, service.NewMergeService(), stubChecklistRepo{})

	h := NewSessionHandler(sessions, suggestions, checklists)

	r := mux.NewRouter()
	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/sessions", h.Create).Methods("POST")
	api.HandleFunc("/sessions/{id}", h.Get).Methods("GET")
	api.HandleFunc("/sessions/{id}/question/current", h.CurrentQuestion).Methods("GET")
	api.HandleFunc("/sessions/{id}/answers", h.Answer).Methods("POST")
	api.HandleFunc("/sessions/{id}/back", h.GoBack).Methods("POST")
	api.HandleFunc("/sessions/{id}/progress", h.Progress).Methods("GET")
	api.HandleFunc("/sessions/{id}/checklist", h.GenerateChecklist).Methods("POST")
	return r
}

func createSession(t *testing.T, router *mux.Router) string {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var session model.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.ID)
	return session.ID
}

func postAnswer(t *testing.T, router *mux.Router, sessionID, questionID, rawValue string) *httptest.ResponseRecorder {
	t.Helper()
	body := bytes.NewBufferString(`{"questionId":"` + questionID + `","value":` + rawValue + `}`)
	req := httptest.NewRequest("POST", "/v1/sessions/"+sessionID+"/answers", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter()
	sessionID := createSession(t, router)

	// First question is the service type
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/sessions/"+sessionID+"/question/current", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), catalog.QServiceType)

	// Answer it and check progress moved
	w = postAnswer(t, router, sessionID, catalog.QServiceType, `"residential"`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/sessions/"+sessionID+"/progress", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var progress model.Progress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	assert.Equal(t, 1, progress.Current)

	// Back out again
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/v1/sessions/"+sessionID+"/back", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var session model.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Empty(t, session.Answers)
}

func TestAnswerStatusCodes(t *testing.T) {
	router := newTestRouter()
	sessionID := createSession(t, router)

	// Unknown session
	w := postAnswer(t, router, "missing", catalog.QServiceType, `"residential"`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown question
	w = postAnswer(t, router, sessionID, "no-such-question", `"x"`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Invalid option
	w = postAnswer(t, router, sessionID, catalog.QServiceType, `"window-washing"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed body
	req := httptest.NewRequest("POST", "/v1/sessions/"+sessionID+"/answers", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Object values are not a supported answer shape
	w = postAnswer(t, router, sessionID, catalog.QServiceType, `{"v":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChecklistBeforeCompletionConflicts(t *testing.T) {
	router := newTestRouter()
	sessionID := createSession(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/v1/sessions/"+sessionID+"/checklist", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestChecklistAfterCompletion(t *testing.T) {
	router := newTestRouter()
	sessionID := createSession(t, router)

	answers := []struct{ id, value string }{
		{catalog.QServiceType, `"residential"`},
		{catalog.QPropertyType, `"house"`},
		{catalog.QPropertySize, `"medium"`},
		{catalog.QRooms, `["kitchen","bathroom"]`},
		{catalog.QFrequency, `"weekly"`},
	}
	for _, a := range answers {
		w := postAnswer(t, router, sessionID, a.id, a.value)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/v1/sessions/"+sessionID+"/checklist", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var checklist model.Checklist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checklist))
	assert.NotEmpty(t, checklist.Items)
}
