package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler     postHandler
	commentHandler  commentHandler
	profileHandler  profileHandler
	categoryHandler categoryHandler
	authHandler     authHandler
	pagesHandler    pagesHandler
}
