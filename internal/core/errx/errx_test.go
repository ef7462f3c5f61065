package errx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Coil/internal/core/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fieldErr struct{ name string }

func (f fieldErr) Error() string { return "bad " + f.name }
func (f fieldErr) FieldName() string { return f.name }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWrite(t *testing.T) {
	t.Run("app error with field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Write(rec, httptest.NewRequest("POST", "/x", nil), New(fieldErr{"diameter_mm"}, http.StatusBadRequest, "nope"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]string{"error": "nope", "field": "diameter_mm"}, decode(t, rec))
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/x", nil)
		req.Header.Set("Accept-Language", "bg")
		rec := httptest.NewRecorder()
		Write(rec, req, errors.New("pq: password authentication failed"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]string{"error": "вътрешна грешка на сървъра"}, decode(t, rec))
	})
}

func TestAppError(t *testing.T) {
	base := errors.New("boom")
	err := New(base, http.StatusBadGateway, "upstream")
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "upstream: boom", err.Error())
	assert.Equal(t, "bad", New(nil, 400, "bad").Error())

	br := BadRequest(language.English, i18n.KeyTooManyItems, 3)
	assert.Equal(t, http.StatusBadRequest, br.Status)
	assert.Equal(t, "Too many items (max 3)", br.Message)
}
