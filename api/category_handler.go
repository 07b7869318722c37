package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/errs"
)

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories blog.CategoryStore
	posts      blog.PostStore
}

func newCategoryHandler(categories blog.CategoryStore, posts blog.PostStore) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
		posts:      posts,
	}
}

// categoryPosts serves the public feed of one published category. A missing
// or unpublished category is a 404 before any post query runs.
func (h categoryHandler) categoryPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "categorySlug")

		category, err := h.categories.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}
		if !category.IsPublished {
			h.responder.WriteError(w, errs.NewNotFoundError("category not found"))
			return
		}

		page, err := h.posts.FindPage(r.Context(), blog.PostQuery{
			CategoryID: &category.ID,
			Now:        time.Now(),
			Page:       pageParam(r),
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"category": category,
			"page":     page,
		})
	}
}
