package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	WorkID   uuid.UUID `db:"work_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    int       `db:"score"` // 1-10
}
