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
	"github.com/blogicum/backend/storage"
)

type postHandler struct {
	responder  Responder
	logger     zerolog.Logger
	posts      blog.PostStore
	categories blog.CategoryStore
	locations  blog.LocationStore
	comments   blog.CommentStore
	images     storage.ImageStore
}

func newPostHandler(posts blog.PostStore, categories blog.CategoryStore, locations blog.LocationStore, comments blog.CommentStore, images storage.ImageStore) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		posts:      posts,
		categories: categories,
		locations:  locations,
		comments:   comments,
		images:     images,
	}
}

// PostDetail is a post together with its comments, oldest comment first.
type PostDetail struct {
	Post     *models.Post      `json:"post"`
	Comments []*models.Comment `json:"comments"`
}

// listPosts serves the global feed: fully public posts only, newest
// publication first, ten per page.
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.posts.FindPage(r.Context(), blog.PostQuery{
			Now:  time.Now(),
			Page: pageParam(r),
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// postDetail serves one post with its comments. A post the viewer may not
// see answers 404, same as an absent one, so hidden posts cannot be probed.
func (h postHandler) postDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		viewer := ctxViewer(r.Context())
		var viewerID *uuid.UUID
		if viewer != nil {
			viewerID = &viewer.ID
		}
		if !blog.Visible(post, viewerID, time.Now()) {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		comments, err := h.comments.FindByPost(r.Context(), post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, PostDetail{Post: post, Comments: comments})
	}
}

// postImage streams a post's attached image, under the same visibility rule
// as the post itself.
func (h postHandler) postImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		viewer := ctxViewer(r.Context())
		var viewerID *uuid.UUID
		if viewer != nil {
			viewerID = &viewer.ID
		}
		if !blog.Visible(post, viewerID, time.Now()) || post.ImageKey == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("image not found"))
			return
		}

		data, contentType, err := h.images.Retrieve(r.Context(), *post.ImageKey)
		if err != nil {
			if err == storage.ErrNotFound {
				h.responder.WriteError(w, errs.NewNotFoundError("image not found"))
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if _, err := w.Write(data); err != nil {
			h.logger.Error().Err(err).Msg("error writing image response")
		}
	}
}

// newPostForm serves the create-post form document: the selectable
// categories (published only) and locations.
func (h postHandler) newPostForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxViewer(r.Context()) == nil {
			h.responder.RedirectToLogin(w, r)
			return
		}
		h.writePostForm(w, r, nil)
	}
}

func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxViewer(r.Context())
		if viewer == nil {
			h.responder.RedirectToLogin(w, r)
			return
		}

		form, image, err := h.parsePostForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.Validate(r.Context(), h.categories, time.Now()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post := models.Post{
			Title:       form.Title,
			Text:        form.Text,
			PubDate:     form.PubDate,
			AuthorID:    viewer.ID,
			CategoryID:  form.CategoryID,
			LocationID:  form.LocationID,
			IsPublished: true,
		}
		if image != nil {
			key, err := h.images.Store(r.Context(), image.data, image.contentType)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			post.ImageKey = &key
		}

		if err := h.posts.Add(r.Context(), &post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create post", "post", err))
			return
		}

		h.responder.Redirect(w, r, "/profile/"+viewer.Username)
	}
}

// editPost lets the author change a post. Anyone else is sent to the
// read-only detail view instead of getting an error.
func (h postHandler) editPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxViewer(r.Context())
		if viewer == nil {
			h.responder.RedirectToLogin(w, r)
			return
		}

		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}
		if post.AuthorID != viewer.ID {
			h.responder.Redirect(w, r, "/posts/"+post.ID.String())
			return
		}

		if r.Method == http.MethodGet {
			h.writePostForm(w, r, post)
			return
		}

		form, image, err := h.parsePostForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.Validate(r.Context(), h.categories, time.Now()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post.Title = form.Title
		post.Text = form.Text
		post.PubDate = form.PubDate
		post.CategoryID = form.CategoryID
		post.LocationID = form.LocationID
		if image != nil {
			key, err := h.images.Store(r.Context(), image.data, image.contentType)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			post.ImageKey = &key
		}
		post.Author, post.Category, post.Location = nil, nil, nil

		if err := h.posts.Update(r.Context(), post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update post", "post", err))
			return
		}

		h.responder.Redirect(w, r, "/posts/"+post.ID.String())
	}
}

// deletePost removes the author's post and all its comments. A non-author
// gets 404, not a redirect.
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxViewer(r.Context())
		if viewer == nil {
			h.responder.RedirectToLogin(w, r)
			return
		}

		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}
		if post.AuthorID != viewer.ID {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		if r.Method == http.MethodGet {
			// Confirmation view before the POST commits.
			h.responder.WriteJSON(w, map[string]interface{}{"post": post})
			return
		}

		if err := h.posts.Delete(r.Context(), post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete post", "post", err))
			return
		}

		h.responder.Redirect(w, r, "/profile/"+viewer.Username)
	}
}

// loadPost resolves the {postID} URL parameter. On failure it has already
// written the response and returns ok=false.
func (h postHandler) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	postIDStr := chi.URLParam(r, "postID")
	if postIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
		return nil, false
	}

	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
		return nil, false
	}

	post, err := h.posts.FindByID(r.Context(), postID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
		return nil, false
	}
	return post, true
}

func (h postHandler) writePostForm(w http.ResponseWriter, r *http.Request, post *models.Post) {
	categories, err := h.categories.FindPublished(r.Context())
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
		return
	}
	locations, err := h.locations.FindAll(r.Context())
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find locations", "locations", err))
		return
	}

	doc := map[string]interface{}{
		"categories": categories,
		"locations":  locations,
	}
	if post != nil {
		doc["post"] = post
	}
	h.responder.WriteJSON(w, doc)
}

func (h postHandler) parsePostForm(r *http.Request) (*blog.PostForm, *imageUpload, error) {
	values, image, err := readForm(r)
	if err != nil {
		return nil, nil, err
	}

	form := blog.PostForm{
		Title: values.Get("title"),
		Text:  values.Get("text"),
	}
	if raw := values.Get("pub_date"); raw != "" {
		dt, err := parsePubDate(raw)
		if err != nil {
			return nil, nil, errs.NewValidationError("pub_date", "unrecognized date format")
		}
		form.PubDate = dt
	}
	if form.CategoryID, err = optionalUUID("category", values.Get("category")); err != nil {
		return nil, nil, err
	}
	if form.LocationID, err = optionalUUID("location", values.Get("location")); err != nil {
		return nil, nil, err
	}
	return &form, image, nil
}
