package route

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"levelup/src-server/model"
	"levelup/src-server/utils"

	"github.com/google/uuid"
)

type GamerCtxKeyType string

const (
	GamerCtxKey        GamerCtxKeyType = "gamer"
	RequestIDHeaderKey string          = "X-Request-Id"
)

// Accepts "Token <secret>" and "Bearer <secret>".
func tokenFromHeader(r *http.Request) string {
	scheme, secret, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(secret)
	}
	return ""
}

func AuthMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := tokenFromHeader(r)
		if secret == "" {
			writeMessage(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		startTimer := time.Now()
		gamer, err := model.GamerForToken(r.Context(), as.BunDB, secret)
		if err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.AuthLookup, startTimer)

		ctx := context.WithValue(r.Context(), GamerCtxKey, gamer)
		next(w, r.WithContext(ctx))
	}
}

// Gamer resolved by AuthMiddleware.
func gamerFromContext(w http.ResponseWriter, r *http.Request) (*model.Gamer, bool) {
	gamer, ok := r.Context().Value(GamerCtxKey).(*model.Gamer)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Can't get gamer from middleware")
		return nil, false
	}
	return gamer, true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// One log line and one request sample per request, tagged with a request id.
func LogMiddleware(as *utils.AppState, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeaderKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeaderKey, requestID)

		startTimer := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		slog.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(startTimer),
		)
		as.MetricChans.ObserveRequest(r.Method, recorder.status)
	})
}
