package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Institute is a college or institute of the university. Elections and
// user affiliations reference it by its short code (e.g. "ccis"), not by id.
type Institute struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	Type      string    `json:"type"` // "college" or "institute"
	CreatedAt time.Time `json:"created_at"`
}

func (i *Institute) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
