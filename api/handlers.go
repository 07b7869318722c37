package api

import (
	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/database"
	"github.com/blogicum/backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, images storage.ImageStore, tokens blog.TokenIssuer) *routeHandlers {
	return &routeHandlers{
		postHandler:     newPostHandler(db.Posts(), db.Categories(), db.Locations(), db.Comments(), images),
		commentHandler:  newCommentHandler(db.Posts(), db.Comments()),
		profileHandler:  newProfileHandler(db.Users(), db.Posts()),
		categoryHandler: newCategoryHandler(db.Categories(), db.Posts()),
		authHandler:     newAuthHandler(db.Users(), tokens),
		pagesHandler:    newPagesHandler(),
	}
}
