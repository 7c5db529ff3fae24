package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vho0811/blogpost-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *UserRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByID returns a user by its ID, or nil when no row exists
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAuthProviderID returns the user mirroring the given external
// identity, or nil when the identity has never been synced
func (r *UserRepo) FindByAuthProviderID(authProviderID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("auth_provider_id = ?", authProviderID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates or refreshes the user row keyed on auth_provider_id. Rows
// are never deleted by this service.
func (r *UserRepo) Upsert(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "auth_provider_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "username", "first_name", "last_name", "profile_image_url", "updated_at",
		}),
	}).Create(user).Error
}
