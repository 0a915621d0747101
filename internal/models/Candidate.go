package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Candidate runs for exactly one position. The free-text fields are shown
// on the ballot and the candidate profile page.
type Candidate struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PositionID     uuid.UUID `gorm:"type:uuid;index;not null" json:"position_id"`
	Name           string    `gorm:"not null" json:"name"`
	College        string    `json:"college"`
	Description    string    `json:"description"`
	PastLeadership string    `json:"past_leadership"`
	Grades         string    `json:"grades"`
	Qualifications string    `json:"qualifications"`
	Platform       string    `json:"platform"`
	ImageURL       *string   `json:"image_url"`
	Position       *Position `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *Candidate) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
