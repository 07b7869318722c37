package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blogicum/backend/blog"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     blog.UserStore
	posts     blog.PostStore
}

func newProfileHandler(users blog.UserStore, posts blog.PostStore) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		posts:     posts,
	}
}

// profile serves a user's feed. The owner sees all their posts, hidden or
// not; everyone else only the public ones.
func (h profileHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := h.users.FindByUsername(r.Context(), username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		viewer := ctxViewer(r.Context())
		page, err := h.posts.FindPage(r.Context(), blog.PostQuery{
			AuthorID:      &user.ID,
			IncludeHidden: viewer != nil && viewer.ID == user.ID,
			Now:           time.Now(),
			Page:          pageParam(r),
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"profile": user,
			"page":    page,
		})
	}
}

// editProfile lets a user change their own details. A viewer on someone
// else's edit URL is sent to the read-only profile instead.
func (h profileHandler) editProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		viewer := ctxViewer(r.Context())
		if viewer == nil {
			h.responder.RedirectToLogin(w, r)
			return
		}
		if viewer.Username != username {
			h.responder.Redirect(w, r, "/profile/"+username)
			return
		}

		if r.Method == http.MethodGet {
			h.responder.WriteJSON(w, map[string]interface{}{"profile": viewer})
			return
		}

		values, _, err := readForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		form := blog.ProfileForm{
			Username:  values.Get("username"),
			FirstName: values.Get("first_name"),
			LastName:  values.Get("last_name"),
			Email:     values.Get("email"),
		}
		if err := form.Validate(r.Context(), h.users, viewer.Username); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		viewer.Username = form.Username
		viewer.FirstName = form.FirstName
		viewer.LastName = form.LastName
		viewer.Email = form.Email
		if err := h.users.Update(r.Context(), viewer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.Redirect(w, r, "/profile/"+viewer.Username)
	}
}
