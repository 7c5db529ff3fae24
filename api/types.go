package api

import (
	"github.com/google/uuid"

	"github.com/vho0811/blogpost-backend/database"
	"github.com/vho0811/blogpost-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler     userHandler
	blogPostHandler blogPostHandler
	commentHandler  commentHandler
	likeHandler     likeHandler
	designHandler   designHandler
	websiteHandler  websiteHandler
	adminHandler    adminHandler
	eventsHandler   eventsHandler
	uploadHandler   uploadHandler
}

// Storage interfaces the handlers depend on. The gorm-backed repos in the
// database package satisfy them; tests substitute mocks.

type blogPostStore interface {
	FindAll(filter database.PostFilter) ([]*models.BlogPost, error)
	FindByID(id uuid.UUID) (*models.BlogPost, error)
	FindBySlug(slug string) (*models.BlogPost, error)
	SlugExists(slug string) (bool, error)
	Add(blogPost *models.BlogPost) error
	Update(blogPost *models.BlogPost) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	IncrementViews(id uuid.UUID) error
}

type blogTagStore interface {
	ReplaceForPost(blogPostID uuid.UUID, values []string) error
}

type commentStore interface {
	FindByID(id uuid.UUID) (*models.Comment, error)
	FindByPost(blogPostID uuid.UUID, limit int) ([]*models.Comment, error)
	CountForPost(blogPostID uuid.UUID) (int64, error)
	Add(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id uuid.UUID) error
}

type likeStore interface {
	Toggle(userID, blogPostID uuid.UUID) (bool, int64, error)
	IsLiked(userID, blogPostID uuid.UUID) (bool, error)
}

type userStore interface {
	Upsert(user *models.User) error
	FindByAuthProviderID(authProviderID string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
}
