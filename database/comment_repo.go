package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vho0811/blogpost-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *CommentRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByID returns a comment by its ID, or nil when no row exists
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("User").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByPost returns the comments of a post, newest first. A limit of zero
// returns the full listing; previews pass a small positive limit.
func (r *CommentRepo) FindByPost(blogPostID uuid.UUID, limit int) ([]*models.Comment, error) {
	query := r.db.Preload("User").
		Where("blog_post_id = ?", blogPostID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var comments []*models.Comment
	err := query.Find(&comments).Error
	return comments, err
}

// CountForPost returns the number of comments on a post
func (r *CommentRepo) CountForPost(blogPostID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("blog_post_id = ?", blogPostID).Count(&count).Error
	return count, err
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update updates an existing comment in the database
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment from the database by id
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
