// Package view renders the application's HTML pages.
package view

import (
	"embed"
	"html/template"
	"net/http"

	"carebook/internal/model"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

// Data is the payload every template receives.
type Data struct {
	Error        string
	Username     string
	Appointments []model.Appointment
}

// Render writes the named page with the given status. A template
// failure at this point can only be reported to the client as a plain
// 500.
func Render(w http.ResponseWriter, status int, page string, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, page+".html", data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
