package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity from the managed auth provider. Rows are upserted
// on session bootstrap, keyed on AuthProviderID, and never deleted.
type User struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	AuthProviderID  string    `json:"authProviderId" db:"auth_provider_id" gorm:"type:text;not null;uniqueIndex"`
	Email           string    `json:"email" db:"email" gorm:"type:text;not null"`
	Username        string    `json:"username" db:"username" gorm:"type:text"`
	FirstName       string    `json:"firstName" db:"first_name" gorm:"type:text"`
	LastName        string    `json:"lastName" db:"last_name" gorm:"type:text"`
	ProfileImageURL string    `json:"profileImageUrl" db:"profile_image_url" gorm:"type:text"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`
}

// DisplayName returns the best available human-readable name for the user.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
