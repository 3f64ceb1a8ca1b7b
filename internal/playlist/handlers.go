package playlist

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"openmelody/internal/httpx"
	"openmelody/internal/identity"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandlePostPlaylist(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := h.service.CreatePlaylist(r.Context(), body.Name, userID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"playlistId": id})
}

func (h *Handler) HandleGetPlaylists(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	playlists, err := h.service.GetPlaylists(r.Context(), userID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}

func (h *Handler) HandleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	if err := h.service.DeletePlaylist(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "playlist deleted"})
}

func (h *Handler) HandlePostPlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		SongID string `json:"songId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SongID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := h.service.AddSong(r.Context(), chi.URLParam(r, "id"), body.SongID, userID); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"message": "song added to playlist"})
}

func (h *Handler) HandleGetPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	pl, songs, err := h.service.GetPlaylistSongs(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"playlist": map[string]any{
			"id":    pl.ID,
			"name":  pl.Name,
			"songs": songs,
		},
	})
}

func (h *Handler) HandleDeletePlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		SongID string `json:"songId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SongID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := h.service.RemoveSong(r.Context(), chi.URLParam(r, "id"), body.SongID, userID); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "song removed from playlist"})
}

func (h *Handler) HandleGetPlaylistActivities(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	playlistID := chi.URLParam(r, "id")
	activities, err := h.service.GetActivities(r.Context(), playlistID, userID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"playlistId": playlistID,
		"activities": activities,
	})
}

func (h *Handler) HandlePostCollaboration(w http.ResponseWriter, r *http.Request) {
	actorID := identity.UserID(r)
	if actorID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		PlaylistID string `json:"playlistId"`
		UserID     string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.PlaylistID == "" || body.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "playlistId and userId are required")
		return
	}

	id, err := h.service.AddCollaborator(r.Context(), body.PlaylistID, body.UserID, actorID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"collaborationId": id})
}

func (h *Handler) HandleDeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	actorID := identity.UserID(r)
	if actorID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		PlaylistID string `json:"playlistId"`
		UserID     string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.PlaylistID == "" || body.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "playlistId and userId are required")
		return
	}

	if err := h.service.RemoveCollaborator(r.Context(), body.PlaylistID, body.UserID, actorID); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "collaboration removed"})
}
