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

type WorkService interface {
	List(ctx context.Context, filter request.WorkListFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.WorkResponse], error)
	Get(ctx context.Context, workID string) (*response.WorkResponse, error)
	Create(ctx context.Context, req *request.CreateWorkRequest) (*response.WorkResponse, error)
	Update(ctx context.Context, workID string, req *request.UpdateWorkRequest) (*response.WorkResponse, error)
	Delete(ctx context.Context, workID string) error
}

type workService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWorkService(repo *repository.Repository, log *zap.Logger) WorkService {
	return &workService{
		repo: repo,
		log:  log.With(zap.String("service", "work")),
	}
}

func (s *workService) List(ctx context.Context, filter request.WorkListFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.WorkResponse], error) {
	repoFilter := repository.WorkFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	works, err := s.repo.Work.FindAll(ctx, repoFilter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list works", zap.Error(err))
		return nil, fmt.Errorf("list works: %w", err)
	}

	total, err := s.repo.Work.CountAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to count works", zap.Error(err))
		return nil, fmt.Errorf("count works: %w", err)
	}

	workResponses := make([]response.WorkResponse, len(works))
	for i, work := range works {
		resp, err := s.buildWorkResponse(ctx, work)
		if err != nil {
			return nil, err
		}
		workResponses[i] = *resp
	}

	return response.NewPaginatedResponse(workResponses, page.Page, page.PerPage, total), nil
}

func (s *workService) Get(ctx context.Context, workID string) (*response.WorkResponse, error) {
	work, err := s.findWork(ctx, workID)
	if err != nil {
		return nil, err
	}

	return s.buildWorkResponse(ctx, work)
}

func (s *workService) Create(ctx context.Context, req *request.CreateWorkRequest) (*response.WorkResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create work validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Year > time.Now().Year() {
		return nil, fmt.Errorf("validation failed: year must not be in the future")
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	work := &entity.Work{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
	}

	if err := s.repo.Work.Create(ctx, work); err != nil {
		s.log.Error("Failed to create work", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create work: %w", err)
	}

	if err := s.setWorkGenres(ctx, work.ID, genres); err != nil {
		return nil, err
	}

	s.log.Info("Work created",
		zap.String("work_id", work.ID.String()),
		zap.String("name", work.Name))

	return s.buildWorkResponse(ctx, work)
}

func (s *workService) Update(ctx context.Context, workID string, req *request.UpdateWorkRequest) (*response.WorkResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update work validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	work, err := s.findWork(ctx, workID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		work.Name = *req.Name
	}
	if req.Year != nil {
		if *req.Year > time.Now().Year() {
			return nil, fmt.Errorf("validation failed: year must not be in the future")
		}
		work.Year = *req.Year
	}
	if req.Description != nil {
		work.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		work.CategoryID = &category.ID
	}

	work.UpdatedAt = time.Now()
	if err := s.repo.Work.Update(ctx, work); err != nil {
		s.log.Error("Failed to update work", zap.Error(err), zap.String("work_id", workID))
		return nil, fmt.Errorf("update work: %w", err)
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.setWorkGenres(ctx, work.ID, genres); err != nil {
			return nil, err
		}
	}

	s.log.Info("Work updated", zap.String("work_id", workID))

	return s.buildWorkResponse(ctx, work)
}

func (s *workService) Delete(ctx context.Context, workID string) error {
	work, err := s.findWork(ctx, workID)
	if err != nil {
		return err
	}

	// Reviews and their comments go with the work via FK cascade
	if err := s.repo.Work.Delete(ctx, work.ID); err != nil {
		s.log.Error("Failed to delete work", zap.Error(err), zap.String("work_id", workID))
		return fmt.Errorf("delete work: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *workService) findWork(ctx context.Context, workID string) (*entity.Work, error) {
	workUUID, err := uuid.Parse(workID)
	if err != nil {
		return nil, fmt.Errorf("invalid work ID format %s", workID)
	}

	work, err := s.repo.Work.FindByID(ctx, workUUID)
	if err != nil {
		s.log.Error("Failed to find work", zap.Error(err), zap.String("work_id", workID))
		return nil, fmt.Errorf("find work: %w", err)
	}
	if work == nil {
		return nil, fmt.Errorf("work %s not found", workID)
	}

	return work, nil
}

func (s *workService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to resolve category", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("validation failed: unknown category slug %s", slug)
	}
	return category, nil
}

func (s *workService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		s.log.Error("Failed to resolve genres", zap.Error(err), zap.Strings("slugs", slugs))
		return nil, fmt.Errorf("resolve genres: %w", err)
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, fmt.Errorf("validation failed: unknown genre slug %s", slug)
		}
	}

	return genres, nil
}

func (s *workService) setWorkGenres(ctx context.Context, workID uuid.UUID, genres []*entity.Genre) error {
	genreIDs := make([]uuid.UUID, len(genres))
	for i, genre := range genres {
		genreIDs[i] = genre.ID
	}

	if err := s.repo.WorkGenre.Set(ctx, workID, genreIDs); err != nil {
		s.log.Error("Failed to set work genres", zap.Error(err), zap.String("work_id", workID.String()))
		return fmt.Errorf("set work genres: %w", err)
	}

	return nil
}

func (s *workService) buildWorkResponse(ctx context.Context, work *entity.Work) (*response.WorkResponse, error) {
	var category *entity.Category
	if work.CategoryID != nil {
		var err error
		category, err = s.repo.Category.FindByID(ctx, *work.CategoryID)
		if err != nil {
			s.log.Error("Failed to load work category", zap.Error(err), zap.String("work_id", work.ID.String()))
			return nil, fmt.Errorf("load work category: %w", err)
		}
	}

	genres, err := s.repo.Genre.FindByWorkID(ctx, work.ID)
	if err != nil {
		s.log.Error("Failed to load work genres", zap.Error(err), zap.String("work_id", work.ID.String()))
		return nil, fmt.Errorf("load work genres: %w", err)
	}

	resp := response.WorkToResponse(work, category, genres)
	return &resp, nil
}
