package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/models"
)

type profileResponse struct {
	Profile models.User   `json:"profile"`
	Page    blog.PostPage `json:"page"`
}

func TestProfileOfMissingUserIs404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/profile/nobody", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileFeedVisibility(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "alice")
	stranger := env.createUser(t, "bob")

	env.createPost(t, owner, nil)
	env.createPost(t, owner, func(p *models.Post) { p.IsPublished = false })

	// The owner's feed carries the hidden post too.
	asOwner := env.request(t, http.MethodGet, "/profile/alice", owner, nil)
	require.Equal(t, http.StatusOK, asOwner.Code)
	var ownerView profileResponse
	require.NoError(t, json.Unmarshal(asOwner.Body.Bytes(), &ownerView))
	assert.Equal(t, "alice", ownerView.Profile.Username)
	assert.Len(t, ownerView.Page.Items, 2)

	// Everyone else only sees what is public.
	asStranger := env.request(t, http.MethodGet, "/profile/alice", stranger, nil)
	require.Equal(t, http.StatusOK, asStranger.Code)
	var strangerView profileResponse
	require.NoError(t, json.Unmarshal(asStranger.Body.Bytes(), &strangerView))
	assert.Len(t, strangerView.Page.Items, 1)

	asAnonymous := env.request(t, http.MethodGet, "/profile/alice", nil, nil)
	require.Equal(t, http.StatusOK, asAnonymous.Code)
	var anonymousView profileResponse
	require.NoError(t, json.Unmarshal(asAnonymous.Body.Bytes(), &anonymousView))
	assert.Len(t, anonymousView.Page.Items, 1)
}

func TestEditProfileRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	rec := env.request(t, http.MethodGet, "/profile/alice/edit", nil, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login?next="+url.QueryEscape("/profile/alice/edit"), rec.Header().Get("Location"))
}

func TestEditProfileByNonOwnerRedirectsToProfile(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	rec := env.request(t, http.MethodPost, "/profile/alice/edit", bob, url.Values{
		"username": {"mallory"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile/alice", rec.Header().Get("Location"))

	// Nothing changed for either account.
	_, err := env.db.Users().FindByUsername(context.Background(), "alice")
	assert.NoError(t, err)
	_, err = env.db.Users().FindByUsername(context.Background(), "mallory")
	assert.Error(t, err)
}

func TestEditProfileByOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	rec := env.request(t, http.MethodPost, "/profile/alice/edit", alice, url.Values{
		"username":   {"alice-updated"},
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
		"email":      {"alice@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile/alice-updated", rec.Header().Get("Location"))

	updated, err := env.db.Users().FindByUsername(context.Background(), "alice-updated")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, updated.ID)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestEditProfileRejectsTakenUsername(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")

	rec := env.request(t, http.MethodPost, "/profile/alice/edit", alice, url.Values{
		"username": {"bob"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
