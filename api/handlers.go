package api

import (
	"github.com/vho0811/blogpost-backend/database"
	"github.com/vho0811/blogpost-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, designer *services.Designer, bus *services.EventBus, uploader *services.ImageUploader) *routeHandlers {
	return &routeHandlers{
		userHandler:     newUserHandler(database.UserRepo()),
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo(), database.BlogTagRepo(), bus),
		commentHandler:  newCommentHandler(database.CommentRepo(), database.BlogPostRepo()),
		likeHandler:     newLikeHandler(database.LikeRepo(), database.BlogPostRepo()),
		designHandler:   newDesignHandler(designer, database.BlogPostRepo()),
		websiteHandler:  newWebsiteHandler(database.BlogPostRepo()),
		adminHandler:    newAdminHandler(database.BlogPostRepo(), database.LikeRepo()),
		eventsHandler:   newEventsHandler(bus),
		uploadHandler:   newUploadHandler(uploader),
	}
}
