package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"isoDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"shortDate": func(t time.Time) string {
			return t.Format("Jan 02")
		},
		// Marshals chart payloads into the page for the client-side charts
		"chartJSON": func(v any) template.JS {
			b, err := sonic.ConfigDefault.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["Notices"] = s.sessions.Flashes(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		GetLoggerFromCtx(r.Context()).Error("rendering template error", slog.String("template", name), slog.String("error", err.Error()))
	}
}
