package database

import (
	"gorm.io/gorm"

	"github.com/vho0811/blogpost-backend/models"
)

type Database struct {
	userRepo     *UserRepo
	blogPostRepo *BlogPostRepo
	blogTagRepo  *BlogTagRepo
	commentRepo  *CommentRepo
	likeRepo     *LikeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		blogPostRepo: NewBlogPostRepo(db),
		blogTagRepo:  NewBlogTagRepo(db),
		commentRepo:  NewCommentRepo(db),
		likeRepo:     NewLikeRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

// Migrate creates or updates the schema for every model owned by this service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.BlogPost{},
		&models.BlogTag{},
		&models.Comment{},
		&models.Like{},
	)
}
