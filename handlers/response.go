package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"healthtrack-server/middleware"
	"healthtrack-server/utils/errors"
)

const requestTimeout = 10 * time.Second

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.ErrInvalidInput
	}
	return nil
}

// authed returns the caller id and a context bounded by requestTimeout.
func authed(r *http.Request) (string, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	return middleware.GetUserID(r.Context()), ctx, cancel
}
