package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"checkflow/internal/catalog"
	"checkflow/internal/repository"
	"checkflow/internal/service"
	"checkflow/internal/transport/rest/handler"
	"checkflow/internal/transport/rest/middleware"
	"checkflow/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	SessionService    *service.SessionService
	SuggestionService *service.SuggestionService
	ChecklistService  *service.ChecklistService
	Templates         catalog.TemplateSource
	ChecklistRepo     repository.ChecklistRepo
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.SuggestionService, c.ChecklistService)
	templateHandler := handler.NewTemplateHandler(c.Templates)
	checklistHandler := handler.NewChecklistHandler(c.ChecklistRepo)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware())

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes: the questionnaire flow is driven by end users
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}", sessionHandler.Delete).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/question/current", sessionHandler.CurrentQuestion).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/answers", sessionHandler.Answer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/back", sessionHandler.GoBack).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/progress", sessionHandler.Progress).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/suggestions", sessionHandler.Suggestions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/checklist", sessionHandler.GenerateChecklist).Methods("POST", "OPTIONS")

	v1.HandleFunc("/templates", templateHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/templates/{templateId}", templateHandler.Get).Methods("GET", "OPTIONS")

	v1.HandleFunc("/checklists/{checklistId}", checklistHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket routes
	v1.HandleFunc("/ws/sessions/{id}/watch", wsHandler.Watch).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/checklists", checklistHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/checklists/{checklistId}", checklistHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/checklists/{checklistId}", checklistHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}

// corsMiddleware builds the CORS wrapper once, reading the allowed
// origins/methods/headers from the environment with permissive
// defaults suitable for a same-site frontend.
func corsMiddleware() mux.MiddlewareFunc {
	origins := envOr("CORS_ALLOWED_ORIGINS", "*")
	methods := envOr("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS")
	headers := envOr("CORS_ALLOWED_HEADERS", "Content-Type, Authorization")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
