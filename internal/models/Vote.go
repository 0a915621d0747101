package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is one position selection on a cast ballot. A nil CandidateID
// records an abstention. The composite unique index on (user_id,
// position_id) is what makes concurrent duplicate submissions safe: the
// service's pre-check is only a courtesy.
type Vote struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_position" json:"user_id"`
	PositionID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_position" json:"position_id"`
	ElectionID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"election_id"`
	CandidateID *uuid.UUID `gorm:"type:uuid" json:"candidate_id"`
	Candidate   *Candidate `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (v *Vote) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
