package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vho0811/blogpost-backend/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *LikeRepo) GetDB() *gorm.DB {
	return r.db
}

// IsLiked reports whether the user currently likes the post
func (r *LikeRepo) IsLiked(userID, blogPostID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND blog_post_id = ?", userID, blogPostID).
		Count(&count).Error
	return count > 0, err
}

// CountForPost returns the number of like rows for a post
func (r *LikeRepo) CountForPost(blogPostID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("blog_post_id = ?", blogPostID).Count(&count).Error
	return count, err
}

// Toggle flips the (user, post) like membership inside a single transaction.
// The unique index on (user_id, blog_post_id) guards against concurrent
// double submits; the post counter is adjusted with an atomic expression in
// the same transaction, never by read-then-write of a cached count.
// Returns the resulting liked state and counter value.
func (r *LikeRepo) Toggle(userID, blogPostID uuid.UUID) (liked bool, likes int64, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		findErr := tx.Where("user_id = ? AND blog_post_id = ?", userID, blogPostID).
			First(&existing).Error

		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.BlogPost{}).
				Where("id = ? AND likes > 0", blogPostID).
				UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			like := models.Like{ID: uuid.New(), UserID: userID, BlogPostID: blogPostID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.BlogPost{}).
				Where("id = ?", blogPostID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return findErr
		}

		return tx.Model(&models.BlogPost{}).
			Where("id = ?", blogPostID).
			Pluck("likes", &likes).Error
	})
	return liked, likes, err
}
