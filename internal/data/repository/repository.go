package repository

import (
	"media-reviews/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Category  CategoryRepository
	Genre     GenreRepository
	Work      WorkRepository
	WorkGenre WorkGenreRepository
	Review    ReviewRepository
	Comment   CommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Category:  NewCategoryRepository(db, log),
		Genre:     NewGenreRepository(db, log),
		Work:      NewWorkRepository(db, log),
		WorkGenre: NewWorkGenreRepository(db, log),
		Review:    NewReviewRepository(db, log),
		Comment:   NewCommentRepository(db, log),
	}
}
