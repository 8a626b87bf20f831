package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"checkflow/internal/catalog"
)

// TemplateHandler serves the read-only template catalog
type TemplateHandler struct {
	templates catalog.TemplateSource
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templates catalog.TemplateSource) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List handles GET /v1/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	serviceType := r.URL.Query().Get("serviceType")
	propertyType := r.URL.Query().Get("propertyType")

	if serviceType != "" && propertyType != "" {
		templates, err := h.templates.DefaultTemplates(r.Context(), serviceType, propertyType)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
		return
	}

	templates, err := h.templates.Templates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// Get handles GET /v1/templates/{templateId}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	template, err := h.templates.TemplateByID(r.Context(), mux.Vars(r)["templateId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if template == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, template)
}
