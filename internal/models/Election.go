package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ElectionUpcoming  = "upcoming"
	ElectionActive    = "active"
	ElectionCompleted = "completed"
)

// Election is the root of the ballot structure. Deleting one cascades to
// its positions, candidates and votes at the database level.
type Election struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	InstituteID string     `gorm:"index;not null" json:"institute_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Status      string     `gorm:"not null;default:upcoming" json:"status"`
	Positions   []Position `gorm:"foreignKey:ElectionID;constraint:OnDelete:CASCADE" json:"positions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Election) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ValidStatus reports whether s is one of the three election states.
func ValidStatus(s string) bool {
	switch s {
	case ElectionUpcoming, ElectionActive, ElectionCompleted:
		return true
	}
	return false
}
