package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"openmelody/internal/apperr"
	"openmelody/internal/playlist"
)

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) Authorize(ctx context.Context, playlistID, userID string, level playlist.AccessLevel) error {
	args := m.Called(ctx, playlistID, userID, level)
	return args.Error(0)
}

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Send(ctx context.Context, job Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *mockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

func postExport(h *Handler, playlistID, userID, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/export/playlists/{id}", h.HandlePostExport)

	req := httptest.NewRequest("POST", "/export/playlists/"+playlistID, strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostExportQueuesJob(t *testing.T) {
	auth := new(mockAuthorizer)
	producer := new(mockProducer)
	h := NewHandler(auth, producer)

	auth.On("Authorize", mock.Anything, "playlist-1", "user-1", playlist.Owner).Return(nil)
	producer.On("Send", mock.Anything, Job{PlaylistID: "playlist-1", TargetEmail: "andi@mail.com"}).
		Return(nil).Once()

	w := postExport(h, "playlist-1", "user-1", `{"targetEmail":"andi@mail.com"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	producer.AssertExpectations(t)
}

func TestPostExportOwnerOnly(t *testing.T) {
	auth := new(mockAuthorizer)
	producer := new(mockProducer)
	h := NewHandler(auth, producer)

	auth.On("Authorize", mock.Anything, "playlist-1", "user-2", playlist.Owner).
		Return(apperr.Forbidden("you are not allowed to access this playlist"))

	w := postExport(h, "playlist-1", "user-2", `{"targetEmail":"andi@mail.com"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	producer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPostExportUnknownPlaylist(t *testing.T) {
	auth := new(mockAuthorizer)
	producer := new(mockProducer)
	h := NewHandler(auth, producer)

	auth.On("Authorize", mock.Anything, "playlist-x", "user-1", playlist.Owner).
		Return(apperr.NotFound("playlist not found"))

	w := postExport(h, "playlist-x", "user-1", `{"targetEmail":"andi@mail.com"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	producer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPostExportInvalidEmail(t *testing.T) {
	auth := new(mockAuthorizer)
	producer := new(mockProducer)
	h := NewHandler(auth, producer)

	for _, email := range []string{"", "no-at-sign", "@mail.com", "andi@", "a b@mail.com"} {
		w := postExport(h, "playlist-1", "user-1", `{"targetEmail":"`+email+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "email %q", email)
	}
	auth.AssertNotCalled(t, "Authorize",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostExportMissingUser(t *testing.T) {
	h := NewHandler(new(mockAuthorizer), new(mockProducer))

	w := postExport(h, "playlist-1", "", `{"targetEmail":"andi@mail.com"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("andi@mail.com"))
	assert.False(t, validEmail("andi"))
	assert.False(t, validEmail("andi@"))
	assert.False(t, validEmail("@mail.com"))
}
