package route

import (
	"net/http"

	"levelup/src-server/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Every route of the service, behind the access log.
func NewHandler(as *utils.AppState) http.Handler {
	muxer := http.NewServeMux()
	muxer.Handle("GET /metrics", promhttp.Handler())
	Ping(muxer, as)
	GameTypes(muxer, as)
	Games(muxer, as)
	Events(muxer, as)
	Reports(muxer, as)
	return LogMiddleware(as, muxer)
}
