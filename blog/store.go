// Package blog holds the business rules of the platform: who may see a post,
// how listings are paginated, and what a valid form submission looks like.
// Persistence is behind the store interfaces; both the gorm repositories and
// the in-memory stores in the database package implement them.
package blog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blogicum/backend/models"
)

// PostsPerPage is the fixed page size of every listing endpoint.
const PostsPerPage = 10

// PostQuery parameterizes a paginated listing: an optional author or category
// filter, whether hidden posts are included (profile feed viewed by its
// owner), and the instant "now" is evaluated at. Results are always ordered
// by pub_date descending and annotated with their comment count.
type PostQuery struct {
	AuthorID      *uuid.UUID
	CategoryID    *uuid.UUID
	IncludeHidden bool
	Now           time.Time
	Page          int
}

// PostPage is one fixed-size page of a listing.
type PostPage struct {
	Items      []*models.Post `json:"items"`
	Number     int            `json:"number"`
	PerPage    int            `json:"perPage"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
}

// ClampPage normalizes a requested page number against the collection size.
// Out-of-range pages clamp to the nearest valid page instead of erroring; an
// empty collection yields page 1 of 1.
func ClampPage(page, totalItems, perPage int) (clamped, totalPages int) {
	totalPages = (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

type UserStore interface {
	Add(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryStore interface {
	Add(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	// FindPublished returns the categories offered in the post form's
	// selection set, ordered by title.
	FindPublished(ctx context.Context) ([]*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LocationStore interface {
	Add(ctx context.Context, location *models.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	FindAll(ctx context.Context) ([]*models.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostStore interface {
	Add(ctx context.Context, post *models.Post) error
	// FindByID loads a post with its author, category and location. It does
	// not apply visibility; callers decide with Visible.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindPage(ctx context.Context, q PostQuery) (*PostPage, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	Add(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	// FindByPost returns a post's comments ordered by creation ascending.
	FindByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
