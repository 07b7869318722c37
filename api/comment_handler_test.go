package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogicum/backend/models"
)

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	commenter := env.createUser(t, "bob")
	post := env.createPost(t, author, nil)

	rec := env.request(t, http.MethodPost, "/posts/"+post.ID.String()+"/comment", commenter, url.Values{
		"text": {"great read"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/posts/"+post.ID.String(), rec.Header().Get("Location"))

	comments, err := env.db.Comments().FindByPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "great read", comments[0].Text)
	assert.Equal(t, commenter.ID, comments[0].AuthorID)
}

func TestAddCommentViaGetIs404(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	post := env.createPost(t, author, nil)

	rec := env.request(t, http.MethodGet, "/posts/"+post.ID.String()+"/comment", author, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCommentOnHiddenCategoryIs404(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	commenter := env.createUser(t, "bob")

	hidden := &models.Category{Title: "Drafts", Slug: "drafts", IsPublished: false}
	require.NoError(t, env.db.Categories().Add(context.Background(), hidden))
	post := env.createPost(t, author, func(p *models.Post) { p.CategoryID = &hidden.ID })

	rec := env.request(t, http.MethodPost, "/posts/"+post.ID.String()+"/comment", commenter, url.Values{
		"text": {"can you see me"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// No comment row was created.
	comments, err := env.db.Comments().FindByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestAuthorCannotCommentOwnUnpublishedPost(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	post := env.createPost(t, author, func(p *models.Post) { p.IsPublished = false })

	rec := env.request(t, http.MethodPost, "/posts/"+post.ID.String()+"/comment", author, url.Values{
		"text": {"note to self"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	post := env.createPost(t, author, nil)

	rec := env.request(t, http.MethodPost, "/posts/"+post.ID.String()+"/comment", author, url.Values{
		"text": {"   "},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditCommentOnlyByItsAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	commenter := env.createUser(t, "bob")
	post := env.createPost(t, author, nil)

	comment := &models.Comment{PostID: post.ID, AuthorID: commenter.ID, Text: "original"}
	require.NoError(t, env.db.Comments().Add(context.Background(), comment))

	editPath := "/posts/" + post.ID.String() + "/comments/" + comment.ID.String() + "/edit"

	// The post's author is not the comment's author: 404, even for the form.
	form := env.request(t, http.MethodGet, editPath, author, nil)
	assert.Equal(t, http.StatusNotFound, form.Code)

	denied := env.request(t, http.MethodPost, editPath, author, url.Values{"text": {"defaced"}})
	assert.Equal(t, http.StatusNotFound, denied.Code)

	allowed := env.request(t, http.MethodPost, editPath, commenter, url.Values{"text": {"edited"}})
	require.Equal(t, http.StatusSeeOther, allowed.Code)

	reloaded, err := env.db.Comments().FindByID(context.Background(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded.Text)
}

func TestDeleteCommentOnlyByItsAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	commenter := env.createUser(t, "bob")
	post := env.createPost(t, author, nil)

	comment := &models.Comment{PostID: post.ID, AuthorID: commenter.ID, Text: "remove me"}
	require.NoError(t, env.db.Comments().Add(context.Background(), comment))

	deletePath := "/posts/" + post.ID.String() + "/comments/" + comment.ID.String() + "/delete"

	denied := env.request(t, http.MethodPost, deletePath, author, nil)
	assert.Equal(t, http.StatusNotFound, denied.Code)

	allowed := env.request(t, http.MethodPost, deletePath, commenter, nil)
	require.Equal(t, http.StatusSeeOther, allowed.Code)

	_, err := env.db.Comments().FindByID(context.Background(), comment.ID)
	assert.Error(t, err)
}

func TestCommentUnderWrongPostIs404(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	postA := env.createPost(t, author, nil)
	postB := env.createPost(t, author, nil)

	comment := &models.Comment{PostID: postA.ID, AuthorID: author.ID, Text: "hi"}
	require.NoError(t, env.db.Comments().Add(context.Background(), comment))

	// Right comment, wrong post in the URL.
	rec := env.request(t, http.MethodPost,
		"/posts/"+postB.ID.String()+"/comments/"+comment.ID.String()+"/delete", author, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
