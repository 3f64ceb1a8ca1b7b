package export

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"openmelody/internal/httpx"
	"openmelody/internal/identity"
	"openmelody/internal/playlist"
)

// Authorizer is the slice of the playlist service the export trigger needs:
// the playlist must exist and the caller must own it.
type Authorizer interface {
	Authorize(ctx context.Context, playlistID, userID string, level playlist.AccessLevel) error
}

type Handler struct {
	playlists Authorizer
	producer  Producer
}

func NewHandler(playlists Authorizer, producer Producer) *Handler {
	return &Handler{playlists: playlists, producer: producer}
}

// HandlePostExport enqueues an export job for a playlist. Owner-only: a
// collaborator may edit a playlist but never export it.
func (h *Handler) HandlePostExport(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		TargetEmail string `json:"targetEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !validEmail(body.TargetEmail) {
		httpx.WriteError(w, http.StatusBadRequest, "targetEmail must be a valid email address")
		return
	}

	playlistID := chi.URLParam(r, "id")
	if err := h.playlists.Authorize(r.Context(), playlistID, userID, playlist.Owner); err != nil {
		httpx.WriteAppError(w, err)
		return
	}

	job := Job{PlaylistID: playlistID, TargetEmail: body.TargetEmail}
	if err := h.producer.Send(r.Context(), job); err != nil {
		httpx.WriteAppError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"message": "export request queued"})
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
