package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vho0811/blogpost-backend/models"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogTagRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all blog tags from the database
func (r *BlogTagRepo) FindAll() ([]*models.BlogTag, error) {
	var blogTags []*models.BlogTag
	err := r.db.Find(&blogTags).Error
	return blogTags, err
}

// Add inserts a new blog tag into the database
func (r *BlogTagRepo) Add(blogTag *models.BlogTag) error {
	return r.db.Create(blogTag).Error
}

// ReplaceForPost swaps the full tag set of a post for the given values
func (r *BlogTagRepo) ReplaceForPost(blogPostID uuid.UUID, values []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", blogPostID).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		for _, value := range values {
			if value == "" {
				continue
			}
			tag := models.BlogTag{ID: uuid.New(), BlogPostID: blogPostID, Value: value}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a blog tag from the database by blog post id and value
func (r *BlogTagRepo) Delete(blogPostID uuid.UUID, value string) error {
	return r.db.Where("blog_post_id = ? AND value = ?", blogPostID, value).Delete(&models.BlogTag{}).Error
}
