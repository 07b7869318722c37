package blog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blogicum/backend/errs"
)

// pubDateSnapWindow absorbs the delay between rendering a form prefilled
// with "now" and submitting it: anything up to this far in the future is
// stored as the exact submission instant.
const pubDateSnapWindow = 60 * time.Second

// NormalizePubDate converts a submitted publication time to UTC at second
// precision. Instants within the snap window at or after now collapse to now.
func NormalizePubDate(dt, now time.Time) time.Time {
	dt = dt.UTC().Truncate(time.Second)
	now = now.UTC().Truncate(time.Second)
	diff := dt.Sub(now)
	if diff >= 0 && diff <= pubDateSnapWindow {
		return now
	}
	return dt
}

// PostForm carries the author-editable fields of a post.
type PostForm struct {
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID *uuid.UUID
	LocationID *uuid.UUID
}

// Validate checks required fields and the category constraint, then
// normalizes PubDate in place. The selection set offered to authors already
// excludes unpublished categories; the published check here is a defensive
// repeat for clients that bypass it.
func (f *PostForm) Validate(ctx context.Context, categories CategoryStore, now time.Time) error {
	if strings.TrimSpace(f.Title) == "" {
		return errs.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(f.Text) == "" {
		return errs.NewValidationError("text", "text is required")
	}
	if f.PubDate.IsZero() {
		return errs.NewValidationError("pub_date", "pub_date is required")
	}
	if f.CategoryID != nil {
		category, err := categories.FindByID(ctx, *f.CategoryID)
		if err != nil {
			return errs.NewValidationError("category", "category does not exist")
		}
		if !category.IsPublished {
			return errs.NewValidationError("category", "category must be published")
		}
	}
	f.PubDate = NormalizePubDate(f.PubDate, now)
	return nil
}

// CommentForm has a single field; non-empty text is its only constraint.
type CommentForm struct {
	Text string
}

func (f *CommentForm) Validate() error {
	if strings.TrimSpace(f.Text) == "" {
		return errs.NewValidationError("text", "text is required")
	}
	return nil
}

// ProfileForm carries the fields a user may change about themselves.
type ProfileForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// Validate checks the username, including uniqueness when it differs from
// the current one.
func (f *ProfileForm) Validate(ctx context.Context, users UserStore, currentUsername string) error {
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		return errs.NewValidationError("username", "username is required")
	}
	if f.Username != currentUsername {
		if _, err := users.FindByUsername(ctx, f.Username); err == nil {
			return errs.NewValidationError("username", "username is already taken")
		}
	}
	return nil
}

// RegistrationForm is the single-shot signup form. There is no email
// verification step; a valid submission commits immediately.
type RegistrationForm struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

func (f *RegistrationForm) Validate(ctx context.Context, users UserStore) error {
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		return errs.NewValidationError("username", "username is required")
	}
	if f.Password == "" {
		return errs.NewValidationError("password", "password is required")
	}
	if _, err := users.FindByUsername(ctx, f.Username); err == nil {
		return errs.NewValidationError("username", "username is already taken")
	}
	return nil
}
