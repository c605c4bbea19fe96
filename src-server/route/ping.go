package route

import (
	"fmt"
	"net/http"
	"runtime"

	"levelup/src-server/utils"
)

type PingRespBody struct {
	Message   string `json:"message"`
	Uptime    string `json:"uptime"`
	GoVersion string `json:"go_version"`
	Memory    string `json:"memory"`
}

func Ping(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		memUsage := float64(m.Sys) / 1024 / 1024

		writeJSON(w, http.StatusOK, PingRespBody{
			Message:   "Pong!",
			Uptime:    as.GetUptime().String(),
			GoVersion: runtime.Version(),
			Memory:    fmt.Sprintf("%.2fMB", memUsage),
		})
	})
}
