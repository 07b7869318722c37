package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pagesHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newPagesHandler() pagesHandler {
	logger := log.With().Str("handlerName", "pagesHandler").Logger()

	return pagesHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

func (h pagesHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"title": "About",
			"body":  "Blogicum is a small blogging platform: write posts, sort them into categories and places, and discuss them in the comments.",
		})
	}
}

func (h pagesHandler) rules() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"title": "Rules",
			"body":  "Be kind. Post under your own name. Unpublished content stays private to its author until an administrator approves it.",
		})
	}
}

// notFound and methodNotAllowed back the router's custom error pages.

func (h pagesHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteNotFound(w)
	}
}

func (h pagesHandler) methodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		h.responder.WriteJSON(w, map[string]interface{}{
			"error":  "Method not allowed",
			"status": "error",
			"code":   405,
		})
	}
}
