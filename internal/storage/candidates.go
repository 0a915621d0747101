package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eballot/internal/apperror"
	"eballot/internal/models"
)

type GormCandidateStore struct {
	db *gorm.DB
}

func NewCandidateStore(db *gorm.DB) *GormCandidateStore {
	return &GormCandidateStore{db: db}
}

func (s *GormCandidateStore) List(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := s.db.WithContext(ctx).Preload("Position").Find(&candidates).Error
	return candidates, err
}

// ListByElection returns the election's candidates with their positions
// preloaded, ordered by position display order.
func (s *GormCandidateStore) ListByElection(ctx context.Context, electionID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := s.db.WithContext(ctx).
		Joins("JOIN positions ON positions.id = candidates.position_id").
		Where("positions.election_id = ?", electionID).
		Order("positions.display_order asc").
		Preload("Position").
		Find(&candidates).Error
	return candidates, err
}

func (s *GormCandidateStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := s.db.WithContext(ctx).Preload("Position").First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("candidate", id.String())
		}
		return nil, err
	}
	return &candidate, nil
}

func (s *GormCandidateStore) Create(ctx context.Context, candidate *models.Candidate) error {
	return s.db.WithContext(ctx).Create(candidate).Error
}

func (s *GormCandidateStore) Save(ctx context.Context, candidate *models.Candidate) error {
	return s.db.WithContext(ctx).Save(candidate).Error
}

func (s *GormCandidateStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Candidate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("candidate", id.String())
	}
	return nil
}
