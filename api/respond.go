package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/blogicum/backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, map[string]interface{}{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"status":  "error",
		})
		return
	}

	// Forbidden answers get the custom error page body.
	if apiErr.StatusCode == http.StatusForbidden {
		r.WriteForbidden(w)
		return
	}

	// Build response based on error details
	response := map[string]interface{}{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	// Add details if present
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response["cause"] = apiErr.GetFullError()
	}

	// For expected errors, set the status code from apiErr
	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// Redirect answers a successful form commit: see-other to the given path.
func (r Responder) Redirect(w http.ResponseWriter, req *http.Request, location string) {
	http.Redirect(w, req, location, http.StatusSeeOther)
}

// RedirectToLogin sends an anonymous viewer to the login page, carrying the
// original path so the client can come back after authenticating.
func (r Responder) RedirectToLogin(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, "/auth/login?next="+url.QueryEscape(req.URL.Path), http.StatusFound)
}

// The custom error page bodies. The router's NotFound handler and the panic
// recovery middleware use these so every error surface looks the same.

func (r Responder) WriteNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	r.WriteJSON(w, map[string]interface{}{
		"error":  "Page not found",
		"status": "error",
		"code":   404,
	})
}

func (r Responder) WriteForbidden(w http.ResponseWriter) {
	w.WriteHeader(http.StatusForbidden)
	r.WriteJSON(w, map[string]interface{}{
		"error":  "Forbidden",
		"status": "error",
		"code":   403,
	})
}

func (r Responder) WriteServerError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
	r.WriteJSON(w, map[string]interface{}{
		"error":  "Server error",
		"status": "error",
		"code":   500,
	})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
