package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vho0811/blogpost-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogPostRepo) GetDB() *gorm.DB {
	return r.db
}

// PostFilter narrows FindAll results. Zero values mean "no restriction".
type PostFilter struct {
	Status   string
	Category string
	UserID   uuid.UUID
}

// FindAll returns blog posts matching the filter, newest first
func (r *BlogPostRepo) FindAll(filter PostFilter) ([]*models.BlogPost, error) {
	query := r.db.Preload("Tags").Preload("Author").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.UserID != uuid.Nil {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var blogPosts []*models.BlogPost
	err := query.Find(&blogPosts).Error
	return blogPosts, err
}

// FindByID returns a blog post by its ID, or nil when no row exists
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.Preload("Tags").Preload("Author").First(&blogPost, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// FindBySlug returns a blog post by its URL slug, or nil when no row exists
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.Preload("Tags").Preload("Author").Where("slug = ?", slug).First(&blogPost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// SlugExists reports whether any stored post already uses the slug
func (r *BlogPostRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(blogPost *models.BlogPost) error {
	return r.db.Create(blogPost).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(blogPost *models.BlogPost) error {
	return r.db.Save(blogPost).Error
}

// UpdateFields applies a partial column update to a post. The slug and the
// engagement counters are never part of the general update path.
func (r *BlogPostRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	delete(fields, "slug")
	delete(fields, "views")
	delete(fields, "likes")
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}

// IncrementViews bumps the view counter atomically. Repeat views all count.
func (r *BlogPostRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ApplyDesign overwrites the stored design document and stamps the design
// metadata in a single update.
func (r *BlogPostRepo) ApplyDesign(id uuid.UUID, html string, settings datatypes.JSON, at time.Time) error {
	updates := map[string]interface{}{
		"ai_generated_html": html,
		"is_ai_designed":    true,
		"ai_designed_at":    at,
	}
	if settings != nil {
		updates["ai_website_settings"] = settings
	}
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(updates).Error
}

// SetLikesCount overwrites the denormalized likes counter. Used only by the
// reconciliation job; the toggle path adjusts the counter atomically.
func (r *BlogPostRepo) SetLikesCount(id uuid.UUID, count int64) error {
	return r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("likes", count).Error
}

// AllIDs returns the ids of every stored post
func (r *BlogPostRepo) AllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.BlogPost{}).Pluck("id", &ids).Error
	return ids, err
}
