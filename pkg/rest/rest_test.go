package rest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrfksIv/morf-stream/pkg/rest"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := rest.WriteJSON(rec, http.StatusNotFound, rest.Envelope{"error": "not found"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}
