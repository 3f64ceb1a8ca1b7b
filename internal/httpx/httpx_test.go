package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openmelody/internal/apperr"
)

func TestWriteAppErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("playlist not found"), http.StatusNotFound},
		{apperr.Forbidden("not yours"), http.StatusForbidden},
		{apperr.Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{apperr.Invariant("collaboration not found"), http.StatusBadRequest},
		{apperr.Validation("name is required"), http.StatusBadRequest},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		WriteAppError(w, c.err)
		assert.Equal(t, c.want, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, c.err.Error(), body["error"])
	}
}

func TestWriteAppErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, errors.New("dial tcp 127.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "5432")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestWriteJSONSetsContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"albumId": "album-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
