package usecase

import (
	"context"
	"fmt"
	"time"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/data/repository"
	"media-reviews/internal/dto/request"
	"media-reviews/internal/dto/response"
	"media-reviews/pkg/mailer"
	"media-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Signup registers a user (or re-requests a code for an existing one)
	// and sends the confirmation code by email
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// Token exchanges username + confirmation code for a JWT access token
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   *mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail *mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}

	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}

	// The (username, email) pair must either be free or belong to one user;
	// a matching pair just gets a fresh confirmation code
	if byUsername != nil && byUsername.Email != req.Email {
		return nil, fmt.Errorf("validation failed: username already taken")
	}
	if byEmail != nil && byEmail.Username != req.Username {
		return nil, fmt.Errorf("validation failed: email already registered")
	}

	code := utils.GenerateConfirmationCode()
	codeHash, err := utils.HashSecret(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return nil, fmt.Errorf("process confirmation code: %w", err)
	}

	now := time.Now()
	user := byUsername
	if user == nil {
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username:         req.Username,
			Email:            req.Email,
			Role:             entity.RoleUser,
			ConfirmationHash: codeHash,
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
			return nil, fmt.Errorf("create account: %w", err)
		}
	} else {
		user.ConfirmationHash = codeHash
		user.UpdatedAt = now
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to refresh confirmation code", zap.Error(err), zap.String("username", req.Username))
			return nil, fmt.Errorf("refresh confirmation code: %w", err)
		}
	}

	// Deliver the code off the request path
	go func(email, username, code string) {
		if err := s.mail.SendConfirmationCode(email, username, code); err != nil {
			s.log.Error("Failed to send confirmation code", zap.Error(err), zap.String("email", email))
		}
	}(user.Email, user.Username, code)

	s.log.Info("Signup processed",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.SignupResponse{
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if !usernameRE.MatchString(req.Username) {
		return nil, fmt.Errorf("validation failed: username may only contain letters, digits and @ . + - _")
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Username)
	}

	if user.ConfirmationHash == "" || !utils.CheckSecretHash(req.ConfirmationCode, user.ConfirmationHash) {
		s.log.Warn("Wrong confirmation code", zap.String("username", req.Username))
		return nil, fmt.Errorf("validation failed: wrong confirmation code")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, string(user.Role), s.config.JWT)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return &response.TokenResponse{Token: token}, nil
}
