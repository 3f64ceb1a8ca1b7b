// Package httpx holds the JSON response helpers shared by all handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"openmelody/internal/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

// WriteAppError classifies err and writes the matching status. Domain error
// kinds keep their message; anything else is logged and reported as a generic
// server failure.
func WriteAppError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		WriteError(w, ae.Status(), ae.Msg)
		return
	}
	log.Printf("openmelody: internal error: %v", err)
	WriteError(w, http.StatusInternalServerError, "internal server error")
}
