package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Publication states for a blog post.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// BlogPost represents a complete blog post with authorship, publication state,
// engagement counters and the AI design artifact.
type BlogPost struct {
	ID               uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug             string         `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	UserID           uuid.UUID      `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	Title            string         `json:"title" db:"title" gorm:"type:text;not null"`
	Subtitle         string         `json:"subtitle" db:"subtitle" gorm:"type:text"`
	Content          string         `json:"content" db:"content" gorm:"type:text;not null"`
	Category         string         `json:"category" db:"category" gorm:"type:text"`
	FeaturedImageURL string         `json:"featuredImageUrl" db:"featured_image_url" gorm:"type:text"`
	ReadTime         int            `json:"readTime" db:"read_time" gorm:"type:integer;not null;default:1"`
	Status           string         `json:"status" db:"status" gorm:"type:text;not null;default:draft"`
	PublishedAt      *time.Time     `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp"`
	Views            int64          `json:"views" db:"views" gorm:"type:bigint;not null;default:0"`
	Likes            int64          `json:"likes" db:"likes" gorm:"type:bigint;not null;default:0"`
	AIGeneratedHTML  string         `json:"aiGeneratedHtml,omitempty" db:"ai_generated_html" gorm:"type:text;column:ai_generated_html"`
	IsAIDesigned     bool           `json:"isAiDesigned" db:"is_ai_designed" gorm:"not null;default:false;column:is_ai_designed"`
	AIDesignedAt     *time.Time     `json:"aiDesignedAt,omitempty" db:"ai_designed_at" gorm:"type:timestamp;column:ai_designed_at"`
	AISettings       datatypes.JSON `json:"aiWebsiteSettings,omitempty" db:"ai_website_settings" gorm:"type:jsonb;column:ai_website_settings"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`
	Tags             []BlogTag      `json:"tags,omitempty" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// IsPublished reports whether the post is visible to non-owners.
func (p BlogPost) IsPublished() bool {
	return p.Status == StatusPublished
}

// ValidStatus reports whether s is one of the recognized publication states.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
