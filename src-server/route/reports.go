package route

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"levelup/src-server/model"
	"levelup/src-server/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderReport(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := reportTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("can't render report", "template", name, "error", err)
		http.Error(w, "Can't render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Server-rendered reports, no token required.
func Reports(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /reports/userevents", func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		groups, err := model.EventsByOrganizer(r.Context(), as.BunDB)
		if err != nil {
			slog.Error("can't build events by user report", "error", err)
			http.Error(w, "Can't build report", http.StatusInternalServerError)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		renderReport(w, "userevents.html", groups)
	})

	muxer.HandleFunc("GET /reports/usergames", func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		groups, err := model.GamesByGamer(r.Context(), as.BunDB)
		if err != nil {
			slog.Error("can't build games by user report", "error", err)
			http.Error(w, "Can't build report", http.StatusInternalServerError)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		renderReport(w, "usergames.html", groups)
	})
}
