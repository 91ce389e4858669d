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

type ReviewService interface {
	ListByWork(ctx context.Context, workID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, workID, reviewID string) (*response.ReviewResponse, error)
	Create(ctx context.Context, actor Actor, workID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, actor Actor, workID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, actor Actor, workID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListByWork(ctx context.Context, workID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	work, err := s.findWork(ctx, workID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByWorkID(ctx, work.ID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("work_id", workID))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByWorkID(ctx, work.ID)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.String("work_id", workID))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		author, err := s.authorUsername(ctx, review.AuthorID)
		if err != nil {
			return nil, err
		}
		reviewResponses[i] = response.ReviewToResponse(review, author)
	}

	return response.NewPaginatedResponse(reviewResponses, page.Page, page.PerPage, total), nil
}

func (s *reviewService) Get(ctx context.Context, workID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, workID, reviewID)
	if err != nil {
		return nil, err
	}

	author, err := s.authorUsername(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, actor Actor, workID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	work, err := s.findWork(ctx, workID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByAuthorAndWork(ctx, actor.ID, work.ID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err), zap.String("work_id", workID))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: you have already reviewed this work")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		WorkID:   work.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("work_id", workID),
			zap.String("author_id", actor.ID.String()))
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("work_id", workID))

	author, err := s.authorUsername(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, actor Actor, workID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, workID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.checkPermission(actor, review.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	author, err := s.authorUsername(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, actor Actor, workID, reviewID string) error {
	review, err := s.findReview(ctx, workID, reviewID)
	if err != nil {
		return err
	}
	if err := s.checkPermission(actor, review.AuthorID); err != nil {
		return err
	}

	// Comments go with the review via FK cascade
	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", reviewID))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) findWork(ctx context.Context, workID string) (*entity.Work, error) {
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

// findReview resolves a review and verifies it belongs to the given work.
// A review reached through the wrong work is reported as not found.
func (s *reviewService) findReview(ctx context.Context, workID, reviewID string) (*entity.Review, error) {
	work, err := s.findWork(ctx, workID)
	if err != nil {
		return nil, err
	}

	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format %s", reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.WorkID != work.ID {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	return review, nil
}

func (s *reviewService) checkPermission(actor Actor, authorID uuid.UUID) error {
	if actor.ID == authorID || actor.Role.CanModerate() {
		return nil
	}
	return fmt.Errorf("forbidden: only the author or a moderator may modify a review")
}

func (s *reviewService) authorUsername(ctx context.Context, authorID uuid.UUID) (string, error) {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to load review author", zap.Error(err), zap.String("author_id", authorID.String()))
		return "", fmt.Errorf("load author: %w", err)
	}
	if user == nil {
		// Author account removed after the fact
		return "", nil
	}
	return user.Username, nil
}
