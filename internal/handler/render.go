package handler

import (
	"embed"
	"html/template"
	"net/http"

	"userhub/internal/app/user"
	"userhub/internal/pkg/logx"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData is the payload handed to every page template.
type pageData struct {
	// Error is a flash-style message shown when the previous action failed.
	Error string

	// Info is a flash-style message shown after a successful action.
	Info string

	// User is the authenticated account, when one exists.
	User *user.User

	// Form echoes submitted values back into the form on validation failure.
	Form map[string]string
}

// renderPage executes the named page template with the given status code.
func renderPage(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		logx.Error(err, "failed to render page template", "template", name)
	}
}
