package blog

import (
	"time"

	"github.com/google/uuid"

	"github.com/blogicum/backend/models"
)

// FullyPublic reports whether a post is visible to everyone: published,
// reached its publication time, and either uncategorized or in a published
// category. The post's Category must be preloaded when CategoryID is set.
func FullyPublic(post *models.Post, now time.Time) bool {
	if !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID == nil {
		return true
	}
	return post.Category != nil && post.Category.IsPublished
}

// Visible reports whether a viewer may see a post. Authors always see their
// own posts; everyone else only sees fully public ones. A nil viewerID means
// anonymous.
func Visible(post *models.Post, viewerID *uuid.UUID, now time.Time) bool {
	if viewerID != nil && *viewerID == post.AuthorID {
		return true
	}
	return FullyPublic(post, now)
}
