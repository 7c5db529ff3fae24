package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes, split into public reads,
// session-authenticated writes, and password-gated maintenance.
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, backendPassword string) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Blog Post Handler endpoints
		r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blog-post/{blogPostID}", handlers.blogPostHandler.getBlogPost())
		r.Get("/blog-post/slug/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Post("/blog-post/{blogPostID}/view", handlers.blogPostHandler.incrementViews())

		// Comment Handler endpoints
		r.Get("/comments", handlers.commentHandler.listComments())

		// Website Handler endpoints
		r.Get("/website/{blogPostID}", handlers.websiteHandler.serveWebsite())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Blog Post Handler endpoints
		r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-post/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())

		// Design Handler endpoints
		r.Post("/ai-design", handlers.designHandler.redesign())

		// Comment Handler endpoints
		r.Post("/comments", handlers.commentHandler.createComment())
		r.Put("/comments/{commentID}", handlers.commentHandler.updateComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())

		// Like Handler endpoints
		r.Post("/like", handlers.likeHandler.toggleLike())
		r.Get("/like/check", handlers.likeHandler.checkLike())

		// User Handler endpoints
		r.Post("/auth/sync", handlers.userHandler.syncUser())
		r.Get("/me", handlers.userHandler.getMe())

		// Upload Handler endpoints
		r.Post("/upload", handlers.uploadHandler.uploadImage())

		// Events Handler endpoints
		r.Get("/events", handlers.eventsHandler.streamEvents())
	})

	// Maintenance routes
	r.Group(func(r chi.Router) {
		r.Use(requireBackendPassword(backendPassword))
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/admin/recount-likes", handlers.adminHandler.recountLikes())
	})
}
