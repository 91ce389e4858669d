package entity

import (
	"github.com/google/uuid"
)

// Work is a reviewed creative item (book, film, album).
// Rating is derived from the work's reviews on read, never stored.
type Work struct {
	BaseNoDelete
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description string     `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
	Rating      *int       `db:"rating"` // round(avg(score)), nil when unreviewed
}
