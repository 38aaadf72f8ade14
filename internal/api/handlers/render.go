package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"shipment-tracker-web/internal/platform/obs"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

// Each page is parsed together with the shared layout and partials and
// rendered through the "layout" template.
var pages = map[string]*template.Template{
	"track":        parsePage("track.html"),
	"tracking":     parsePage("tracking.html"),
	"login":        parsePage("login.html"),
	"dashboard":    parsePage("dashboard.html"),
	"shipments":    parsePage("shipments.html"),
	"shipment_new": parsePage("shipment_new.html"),
	"shipment":     parsePage("shipment.html"),
}

func parsePage(file string) *template.Template {
	return template.Must(template.New("page").Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/history.html",
		"templates/"+file,
	))
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	reqID := obs.RequestID(r.Context())

	t, ok := pages[page]
	if !ok {
		log.Printf("req_id=%s render unknown page=%s", reqID, page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("req_id=%s render page=%s failed: %v", reqID, page, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("req_id=%s write page=%s failed: %v", reqID, page, err)
	}
}
