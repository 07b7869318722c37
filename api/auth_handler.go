package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/errs"
	"github.com/blogicum/backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     blog.UserStore
	tokens    blog.TokenIssuer
}

func newAuthHandler(users blog.UserStore, tokens blog.TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

// registrationForm describes the signup fields for the form renderer.
func (h authHandler) registrationForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"fields": []string{"username", "password", "first_name", "last_name", "email"},
		})
	}
}

// register commits a signup in one shot and sends the new user to login.
// There is no email verification step.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, _, err := readForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		form := blog.RegistrationForm{
			Username:  values.Get("username"),
			Password:  values.Get("password"),
			FirstName: values.Get("first_name"),
			LastName:  values.Get("last_name"),
			Email:     values.Get("email"),
		}
		if err := form.Validate(r.Context(), h.users); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hash, err := blog.HashPassword(form.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			Username:     form.Username,
			FirstName:    form.FirstName,
			LastName:     form.LastName,
			Email:        form.Email,
			PasswordHash: hash,
		}
		if err := h.users.Add(r.Context(), &user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.responder.Redirect(w, r, "/auth/login")
	}
}

// login exchanges credentials for a bearer token. Wrong username and wrong
// password are indistinguishable.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, _, err := readForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		username := values.Get("username")
		password := values.Get("password")

		user, err := h.users.FindByUsername(r.Context(), username)
		if err != nil || !blog.CheckPassword(user.PasswordHash, password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.tokens.Issue(user.ID, time.Now())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"token":    token,
			"username": user.Username,
		})
	}
}
