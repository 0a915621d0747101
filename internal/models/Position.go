package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position is a contested seat within an election. DisplayOrder gives the
// ballot a deterministic sort; it is auto-assigned max+1 when omitted.
type Position struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ElectionID   uuid.UUID   `gorm:"type:uuid;index;not null" json:"election_id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `json:"description"`
	DisplayOrder int         `json:"display_order"`
	Candidates   []Candidate `gorm:"foreignKey:PositionID;constraint:OnDelete:CASCADE" json:"candidates,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (p *Position) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
