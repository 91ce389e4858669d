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

type CommentService interface {
	ListByReview(ctx context.Context, workID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, workID, reviewID, commentID string) (*response.CommentResponse, error)
	Create(ctx context.Context, actor Actor, workID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, actor Actor, workID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, actor Actor, workID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListByReview(ctx context.Context, workID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findReview(ctx, workID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		s.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		author, err := s.authorUsername(ctx, comment.AuthorID)
		if err != nil {
			return nil, err
		}
		commentResponses[i] = response.CommentToResponse(comment, author)
	}

	return response.NewPaginatedResponse(commentResponses, page.Page, page.PerPage, total), nil
}

func (s *commentService) Get(ctx context.Context, workID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, workID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	author, err := s.authorUsername(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, actor Actor, workID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, workID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("author_id", actor.ID.String()))
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID))

	author, err := s.authorUsername(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, actor Actor, workID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	comment, err := s.findComment(ctx, workID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkPermission(actor, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("update comment: %w", err)
	}

	author, err := s.authorUsername(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor Actor, workID, reviewID, commentID string) error {
	comment, err := s.findComment(ctx, workID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := s.checkPermission(actor, comment.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info("Comment deleted", zap.String("comment_id", commentID))
	return nil
}

// ==================== HELPER METHODS ====================

// findReview walks the work -> review chain; a review reached through the
// wrong work is reported as not found.
func (s *commentService) findReview(ctx context.Context, workID, reviewID string) (*entity.Review, error) {
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

func (s *commentService) findComment(ctx context.Context, workID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.findReview(ctx, workID, reviewID)
	if err != nil {
		return nil, err
	}

	commentUUID, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format %s", commentID)
	}

	comment, err := s.repo.Comment.FindByID(ctx, commentUUID)
	if err != nil {
		s.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment %s not found", commentID)
	}

	return comment, nil
}

func (s *commentService) checkPermission(actor Actor, authorID uuid.UUID) error {
	if actor.ID == authorID || actor.Role.CanModerate() {
		return nil
	}
	return fmt.Errorf("forbidden: only the author or a moderator may modify a comment")
}

func (s *commentService) authorUsername(ctx context.Context, authorID uuid.UUID) (string, error) {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to load comment author", zap.Error(err), zap.String("author_id", authorID.String()))
		return "", fmt.Errorf("load author: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.Username, nil
}
