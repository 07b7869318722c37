package api

import (
	"context"

	"github.com/blogicum/backend/models"
)

type keyType string

const viewerKey keyType = "viewer"

// ctxWithViewer adds the authenticated user to the context
func ctxWithViewer(ctx context.Context, viewer *models.User) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// ctxViewer retrieves the authenticated user from the context. Every handler
// receives the current viewer this way; nil means anonymous.
func ctxViewer(ctx context.Context) *models.User {
	if viewer, ok := ctx.Value(viewerKey).(*models.User); ok {
		return viewer
	}
	return nil
}
