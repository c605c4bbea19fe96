package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"levelup/src-server/model"
)

type messageRespBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("can't encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageRespBody{Message: message})
}

// Map a model error onto its status code. Unknown errors are logged and
// reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrors model.FieldErrors
	switch {
	case errors.As(err, &fieldErrors):
		writeJSON(w, http.StatusBadRequest, fieldErrors)
	case errors.Is(err, model.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, model.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "Invalid token.")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// Parse the {id} path segment. A non-numeric id can't match any row.
func pathID(w http.ResponseWriter, r *http.Request, what string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusNotFound, what+" matching query does not exist.")
		return 0, false
	}
	return id, true
}

// Parse an optional integer query filter, nil when absent or blank. Any
// integer, including 0, filters.
func queryID(w http.ResponseWriter, r *http.Request, key string) (*int64, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fieldErrors := model.FieldErrors{}
		fieldErrors.Add(key, "A valid integer is required.")
		writeJSON(w, http.StatusBadRequest, fieldErrors)
		return nil, false
	}
	return &id, true
}
