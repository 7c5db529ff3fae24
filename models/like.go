package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is the join row between a user and a blog post; its existence means
// "liked". The unique index on (user_id, blog_post_id) makes toggling safe
// against double submits.
type Like struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID     uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post"`
	BlogPostID uuid.UUID `json:"blogPostId" db:"blog_post_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post;index"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	BlogPost BlogPost `json:"-" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
	User     User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}
