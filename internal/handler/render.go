package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// LoadTemplates parses the page templates once at startup.
func LoadTemplates(glob string) (*template.Template, error) {
	funcs := template.FuncMap{
		"naturaltime": humanize.Time,
		"datetime": func(t time.Time) string {
			return t.Format("2 Jan 2006 15:04")
		},
		"inSlice": func(needle string, haystack []string) bool {
			for _, v := range haystack {
				if v == needle {
					return true
				}
			}
			return false
		},
	}
	return template.New("").Funcs(funcs).ParseGlob(glob)
}

func (h *Handlers) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.ExecuteTemplate(w, name, data); err != nil {
		h.Log.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}

func (h *Handlers) renderStatus(w http.ResponseWriter, status int, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.Templates.ExecuteTemplate(w, name, data); err != nil {
		h.Log.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}
