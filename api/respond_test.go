package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogicum/backend/errs"
)

func TestWriteErrorUsesForbiddenPage(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteError(rec, errs.NewForbiddenError("not yours"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Forbidden", body["error"])
	assert.Equal(t, float64(403), body["code"])
}

func TestRedirectToLoginEscapesNextPath(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/a&b=c/edit", nil)

	responder.RedirectToLogin(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/login", location.Path)
	// The original path survives a query-string round trip intact.
	assert.Equal(t, "/posts/a&b=c/edit", location.Query().Get("next"))
}
