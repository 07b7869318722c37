package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/errs"
	"github.com/blogicum/backend/models"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     blog.PostStore
	comments  blog.CommentStore
}

func newCommentHandler(posts blog.PostStore, comments blog.CommentStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
		comments:  comments,
	}
}

// addComment creates a comment. Only POST exists here: any other method is a
// not-found error. The target post must be fully public; authors cannot
// comment on their own unpublished posts through this path.
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			h.responder.WriteError(w, errs.NewNotFoundError("page not found"))
			return
		}

		viewer := ctxViewer(r.Context())
		if viewer == nil {
			h.responder.RedirectToLogin(w, r)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.posts.FindByID(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if !blog.FullyPublic(post, time.Now()) {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		values, _, err := readForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		form := blog.CommentForm{Text: values.Get("text")}
		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment := models.Comment{
			PostID:   post.ID,
			AuthorID: viewer.ID,
			Text:     form.Text,
		}
		if err := h.comments.Add(r.Context(), &comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		h.responder.Redirect(w, r, "/posts/"+post.ID.String())
	}
}

// editComment updates a comment's text. Only the comment's author may even
// load the form; everyone else gets 404.
func (h commentHandler) editComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, ok := h.loadOwnComment(w, r)
		if !ok {
			return
		}

		if r.Method == http.MethodGet {
			h.responder.WriteJSON(w, map[string]interface{}{"comment": comment})
			return
		}

		values, _, err := readForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		form := blog.CommentForm{Text: values.Get("text")}
		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment.Text = form.Text
		if err := h.comments.Update(r.Context(), comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update comment", "comment", err))
			return
		}

		h.responder.Redirect(w, r, "/posts/"+comment.PostID.String())
	}
}

func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, ok := h.loadOwnComment(w, r)
		if !ok {
			return
		}

		if r.Method == http.MethodGet {
			h.responder.WriteJSON(w, map[string]interface{}{"comment": comment})
			return
		}

		if err := h.comments.Delete(r.Context(), comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.responder.Redirect(w, r, "/posts/"+comment.PostID.String())
	}
}

// loadOwnComment resolves {postID}/{commentID} and gates on ownership.
// A wrong post, wrong author, or absent comment all answer the same 404.
func (h commentHandler) loadOwnComment(w http.ResponseWriter, r *http.Request) (*models.Comment, bool) {
	viewer := ctxViewer(r.Context())
	if viewer == nil {
		h.responder.RedirectToLogin(w, r)
		return nil, false
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
		return nil, false
	}
	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
		return nil, false
	}

	comment, err := h.comments.FindByID(r.Context(), commentID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
		return nil, false
	}
	if comment.PostID != postID || comment.AuthorID != viewer.ID {
		h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
		return nil, false
	}
	return comment, true
}
