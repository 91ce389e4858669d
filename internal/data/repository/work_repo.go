package repository

import (
	"context"
	"fmt"
	"strings"

	"media-reviews/internal/data/entity"
	"media-reviews/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// WorkFilter narrows work listings; zero values mean no filtering
type WorkFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type WorkRepository interface {
	Create(ctx context.Context, work *entity.Work) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Work, error)
	FindAll(ctx context.Context, filter WorkFilter, limit, offset int) ([]*entity.Work, error)
	CountAll(ctx context.Context, filter WorkFilter) (int64, error)
	Update(ctx context.Context, work *entity.Work) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type workRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWorkRepository(db database.PgxIface, log *zap.Logger) WorkRepository {
	return &workRepository{
		db:  db,
		log: log.With(zap.String("repository", "work")),
	}
}

// ratingExpr derives the displayed rating from current reviews on every read,
// so it can never drift from the score set
const ratingExpr = `(SELECT ROUND(AVG(r.score))::INT FROM reviews r WHERE r.work_id = w.id)`

func (r *workRepository) Create(ctx context.Context, work *entity.Work) error {
	query := `
		INSERT INTO works (id, name, year, description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		work.ID,
		work.Name,
		work.Year,
		work.Description,
		work.CategoryID,
		work.CreatedAt,
		work.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create work",
			zap.Error(err),
			zap.String("name", work.Name),
		)
		return fmt.Errorf("create work %s: %w", work.Name, err)
	}

	return nil
}

func (r *workRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Work, error) {
	query := `
		SELECT w.id, w.name, w.year, w.description, w.category_id,
		       w.created_at, w.updated_at, ` + ratingExpr + ` AS rating
		FROM works w
		WHERE w.id = $1
	`

	var work entity.Work
	err := r.db.QueryRow(ctx, query, id).Scan(
		&work.ID,
		&work.Name,
		&work.Year,
		&work.Description,
		&work.CategoryID,
		&work.CreatedAt,
		&work.UpdatedAt,
		&work.Rating,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find work by ID",
			zap.Error(err),
			zap.String("work_id", id.String()),
		)
		return nil, fmt.Errorf("find work by ID %s: %w", id.String(), err)
	}

	return &work, nil
}

// buildWorkWhere appends filter conditions and returns the updated args
func buildWorkWhere(queryBuilder *strings.Builder, filter WorkFilter, args []interface{}) []interface{} {
	argCount := len(args) + 1

	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND w.category_id = (SELECT id FROM categories WHERE slug = $%d)", argCount))
		args = append(args, filter.CategorySlug)
		argCount++
	}

	if filter.GenreSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			` AND EXISTS (
				SELECT 1 FROM work_genres wg
				INNER JOIN genres g ON g.id = wg.genre_id
				WHERE wg.work_id = w.id AND g.slug = $%d
			)`, argCount))
		args = append(args, filter.GenreSlug)
		argCount++
	}

	if filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.name ILIKE $%d", argCount))
		args = append(args, "%"+filter.Name+"%")
		argCount++
	}

	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.year = $%d", argCount))
		args = append(args, *filter.Year)
	}

	return args
}

func (r *workRepository) FindAll(ctx context.Context, filter WorkFilter, limit, offset int) ([]*entity.Work, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT w.id, w.name, w.year, w.description, w.category_id,
		       w.created_at, w.updated_at, ` + ratingExpr + ` AS rating
		FROM works w
		WHERE TRUE
	`)

	args := buildWorkWhere(&queryBuilder, filter, []interface{}{})

	queryBuilder.WriteString(" ORDER BY w.name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find works",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all works: %w", err)
	}
	defer rows.Close()

	var works []*entity.Work
	for rows.Next() {
		var work entity.Work
		err := rows.Scan(
			&work.ID,
			&work.Name,
			&work.Year,
			&work.Description,
			&work.CategoryID,
			&work.CreatedAt,
			&work.UpdatedAt,
			&work.Rating,
		)
		if err != nil {
			r.log.Error("Failed to scan work row", zap.Error(err))
			return nil, fmt.Errorf("scan work row: %w", err)
		}
		works = append(works, &work)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate works rows: %w", err)
	}

	return works, nil
}

func (r *workRepository) CountAll(ctx context.Context, filter WorkFilter) (int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COUNT(*) FROM works w WHERE TRUE`)

	args := buildWorkWhere(&queryBuilder, filter, []interface{}{})

	var count int64
	err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count works", zap.Error(err))
		return 0, fmt.Errorf("count all works: %w", err)
	}

	return count, nil
}

func (r *workRepository) Update(ctx context.Context, work *entity.Work) error {
	query := `
		UPDATE works
		SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		work.ID,
		work.Name,
		work.Year,
		work.Description,
		work.CategoryID,
		work.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update work",
			zap.Error(err),
			zap.String("work_id", work.ID.String()),
		)
		return fmt.Errorf("update work %s: %w", work.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("work %s not found", work.ID.String())
	}

	return nil
}

func (r *workRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM works WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete work",
			zap.Error(err),
			zap.String("work_id", id.String()),
		)
		return fmt.Errorf("delete work %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("work %s not found", id.String())
	}

	r.log.Info("Work deleted", zap.String("work_id", id.String()))
	return nil
}
