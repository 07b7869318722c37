package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint. The viewer-resolving middleware runs
// on all of them: listing and detail pages are public but behave differently
// for authors, so even anonymous-friendly routes need the viewer.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.resolveViewer)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Feeds
		r.Get("/", handlers.postHandler.listPosts())
		r.Get("/category/{categorySlug}", handlers.categoryHandler.categoryPosts())

		// Posts
		r.Get("/posts/create", handlers.postHandler.newPostForm())
		r.Post("/posts/create", handlers.postHandler.createPost())
		r.Get("/posts/{postID}", handlers.postHandler.postDetail())
		r.Get("/posts/{postID}/image", handlers.postHandler.postImage())
		r.Get("/posts/{postID}/edit", handlers.postHandler.editPost())
		r.Post("/posts/{postID}/edit", handlers.postHandler.editPost())
		r.Get("/posts/{postID}/delete", handlers.postHandler.deletePost())
		r.Post("/posts/{postID}/delete", handlers.postHandler.deletePost())

		// Comments. The add endpoint matches every method so that non-POST
		// requests answer 404 rather than 405.
		r.HandleFunc("/posts/{postID}/comment", handlers.commentHandler.addComment())
		r.Get("/posts/{postID}/comments/{commentID}/edit", handlers.commentHandler.editComment())
		r.Post("/posts/{postID}/comments/{commentID}/edit", handlers.commentHandler.editComment())
		r.Get("/posts/{postID}/comments/{commentID}/delete", handlers.commentHandler.deleteComment())
		r.Post("/posts/{postID}/comments/{commentID}/delete", handlers.commentHandler.deleteComment())

		// Profiles
		r.Get("/profile/{username}", handlers.profileHandler.profile())
		r.Get("/profile/{username}/edit", handlers.profileHandler.editProfile())
		r.Post("/profile/{username}/edit", handlers.profileHandler.editProfile())

		// Auth
		r.Get("/auth/registration", handlers.authHandler.registrationForm())
		r.Post("/auth/registration", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		// Static pages
		r.Get("/pages/about", handlers.pagesHandler.about())
		r.Get("/pages/rules", handlers.pagesHandler.rules())
	})

	r.NotFound(handlers.pagesHandler.notFound())
	r.MethodNotAllowed(handlers.pagesHandler.methodNotAllowed())
}
