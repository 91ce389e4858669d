package usecase

import (
	"context"
	"fmt"
	"time"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/data/repository"
	"media-reviews/internal/dto/request"
	"media-reviews/internal/dto/response"
	"media-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreService interface {
	List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genres repository.GenreRepository
	log    *zap.Logger
}

func NewGenreService(genres repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genres: genres,
		log:    log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.genres.FindAll(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list genres", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("list genres: %w", err)
	}

	total, err := s.genres.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count genres", zap.Error(err))
		return nil, fmt.Errorf("count genres: %w", err)
	}

	genreResponses := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = response.GenreToResponse(genre)
	}

	return response.NewPaginatedResponse(genreResponses, page.Page, page.PerPage, total), nil
}

func (s *genreService) Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}

	existing, err := s.genres.FindBySlug(ctx, req.Slug)
	if err != nil {
		s.log.Error("Failed to check genre slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("check genre slug: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: genre slug already in use")
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.genres.Create(ctx, genre); err != nil {
		s.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	existing, err := s.genres.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("find genre: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("genre %s not found", slug)
	}

	if err := s.genres.DeleteBySlug(ctx, slug); err != nil {
		s.log.Error("Failed to delete genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("delete genre: %w", err)
	}

	return nil
}
