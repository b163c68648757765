package handlers

import (
	"html/template"
	"net/http"

	"fayina-backend/templates"
)

type PageHandler struct {
	templates *template.Template
}

func NewPageHandler() *PageHandler {
	// Parse all templates from embedded filesystem
	templates := template.Must(template.ParseFS(templates.FS, "*.html"))

	return &PageHandler{
		templates: templates,
	}
}

// IndexPage serves the invoice intake form
func (h *PageHandler) IndexPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "index.html", nil)
}
