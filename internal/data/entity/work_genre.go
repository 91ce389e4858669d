package entity

import (
	"github.com/google/uuid"
)

type WorkGenre struct {
	WorkID  uuid.UUID `db:"work_id"`
	GenreID uuid.UUID `db:"genre_id"`
}
