package repository

import (
	"context"
	"fmt"

	"media-reviews/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WorkGenreRepository interface {
	// Set replaces the genre set of a work atomically
	Set(ctx context.Context, workID uuid.UUID, genreIDs []uuid.UUID) error
	DeleteByWorkID(ctx context.Context, workID uuid.UUID) error
}

type workGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWorkGenreRepository(db database.PgxIface, log *zap.Logger) WorkGenreRepository {
	return &workGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "work_genre")),
	}
}

func (r *workGenreRepository) Set(ctx context.Context, workID uuid.UUID, genreIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set work genres: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM work_genres WHERE work_id = $1`, workID); err != nil {
		r.log.Error("Failed to clear work genres",
			zap.Error(err),
			zap.String("work_id", workID.String()),
		)
		return fmt.Errorf("clear work genres for %s: %w", workID.String(), err)
	}

	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO work_genres (work_id, genre_id) VALUES ($1, $2)`,
			workID, genreID)
		if err != nil {
			r.log.Error("Failed to insert work genre",
				zap.Error(err),
				zap.String("work_id", workID.String()),
				zap.String("genre_id", genreID.String()),
			)
			return fmt.Errorf("insert work genre %s/%s: %w",
				workID.String(), genreID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set work genres: %w", err)
	}

	return nil
}

func (r *workGenreRepository) DeleteByWorkID(ctx context.Context, workID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM work_genres WHERE work_id = $1`, workID)
	if err != nil {
		r.log.Error("Failed to delete work genres",
			zap.Error(err),
			zap.String("work_id", workID.String()),
		)
		return fmt.Errorf("delete work genres for %s: %w", workID.String(), err)
	}

	return nil
}
