package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"openmelody/internal/httpx"
	"openmelody/internal/identity"
)

// CoverStorage stores an uploaded album cover and returns its public URL.
type CoverStorage interface {
	UploadCover(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

const maxCoverBytes = 512 * 1024

type Handler struct {
	service *Service
	covers  CoverStorage
}

func NewHandler(service *Service, covers CoverStorage) *Handler {
	return &Handler{service: service, covers: covers}
}

func (h *Handler) HandlePostAlbum(w http.ResponseWriter, r *http.Request) {
	var body albumRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" || body.Year == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "name and year are required")
		return
	}

	id, err := h.service.AddAlbum(r.Context(), body.Name, body.Year)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"albumId": id})
}

func (h *Handler) HandleGetAlbums(w http.ResponseWriter, r *http.Request) {
	albums, fromCache, err := h.service.GetAlbums(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	setDataSource(w, fromCache)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"albums": albums})
}

func (h *Handler) HandleGetAlbumByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	album, fromCacheAlbum, err := h.service.GetAlbumByID(r.Context(), id)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	songs, fromCacheSongs, err := h.service.GetSongsByAlbumID(r.Context(), id)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}

	setDataSource(w, fromCacheAlbum || fromCacheSongs)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"album": map[string]any{
			"id":       album.ID,
			"name":     album.Name,
			"year":     album.Year,
			"coverUrl": album.CoverURL,
			"songs":    songs,
		},
	})
}

func (h *Handler) HandlePutAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body albumRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" || body.Year == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "name and year are required")
		return
	}

	if err := h.service.EditAlbum(r.Context(), id, body.Name, body.Year); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "album updated"})
}

func (h *Handler) HandleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteAlbum(r.Context(), id); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "album deleted"})
}

func (h *Handler) HandlePostAlbumCover(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "cover file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		httpx.WriteError(w, http.StatusBadRequest, "cover must be an image")
		return
	}

	url, err := h.covers.UploadCover(r.Context(), file, header.Size, contentType)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	if err := h.service.SetAlbumCover(r.Context(), id, url); err != nil {
		httpx.WriteAppError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"fileLocation": url})
}

func (h *Handler) HandlePostAlbumLike(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	albumID := chi.URLParam(r, "id")

	if err := h.service.ToggleLike(r.Context(), albumID, userID); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"message": "like toggled"})
}

func (h *Handler) HandleGetAlbumLikes(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")

	likes, fromCache, err := h.service.GetAlbumLikes(r.Context(), albumID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	setDataSource(w, fromCache)
	httpx.WriteJSON(w, http.StatusOK, map[string]int{"likes": likes})
}

func (h *Handler) HandlePostSong(w http.ResponseWriter, r *http.Request) {
	var in SongInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := h.service.AddSong(r.Context(), in)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"songId": id})
}

func (h *Handler) HandleGetSongs(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	performer := r.URL.Query().Get("performer")

	songs, err := h.service.GetSongs(r.Context(), title, performer)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"songs": songs})
}

func (h *Handler) HandleGetSongByID(w http.ResponseWriter, r *http.Request) {
	song, err := h.service.GetSongByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"song": song})
}

func (h *Handler) HandlePutSong(w http.ResponseWriter, r *http.Request) {
	var in SongInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.service.EditSong(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "song updated"})
}

func (h *Handler) HandleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSong(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "song deleted"})
}

func setDataSource(w http.ResponseWriter, fromCache bool) {
	if fromCache {
		w.Header().Set("X-Data-Source", "cache")
	}
}
