package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a reader comment on a blog post. Only the authoring user
// may edit or delete it.
type Comment struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	BlogPostID uuid.UUID `json:"blogPostId" db:"blog_post_id" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`

	BlogPost BlogPost `json:"-" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
	User     *User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
