package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/data/repository"
	"media-reviews/pkg/mailer"
	"media-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Work     WorkService
	Review   ReviewService
	Comment  CommentService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	mail := mailer.New(config.Email, log)

	return &Service{
		Auth:     NewAuthService(repo, config, mail, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Work:     NewWorkService(repo, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}

// Actor is the authenticated caller as seen by object-level permission checks
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

var (
	usernameRE = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRE     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func validateUsername(username string) error {
	if strings.EqualFold(username, "me") {
		return fmt.Errorf("validation failed: username 'me' is reserved")
	}
	if !usernameRE.MatchString(username) {
		return fmt.Errorf("validation failed: username may only contain letters, digits and @ . + - _")
	}
	return nil
}

func validateSlug(slug string) error {
	if !slugRE.MatchString(slug) {
		return fmt.Errorf("validation failed: slug may only contain letters, digits, hyphens and underscores")
	}
	return nil
}
