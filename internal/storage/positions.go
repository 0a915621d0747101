package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eballot/internal/apperror"
	"eballot/internal/models"
)

type GormPositionStore struct {
	db *gorm.DB
}

func NewPositionStore(db *gorm.DB) *GormPositionStore {
	return &GormPositionStore{db: db}
}

func (s *GormPositionStore) ListByElection(ctx context.Context, electionID uuid.UUID) ([]models.Position, error) {
	var positions []models.Position
	err := s.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("display_order asc").
		Find(&positions).Error
	return positions, err
}

func (s *GormPositionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	var position models.Position
	if err := s.db.WithContext(ctx).First(&position, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("position", id.String())
		}
		return nil, err
	}
	return &position, nil
}

func (s *GormPositionStore) FindByTitle(ctx context.Context, electionID uuid.UUID, title string) (*models.Position, error) {
	var position models.Position
	err := s.db.WithContext(ctx).
		Where("election_id = ? AND title = ?", electionID, title).
		First(&position).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("position", title)
		}
		return nil, err
	}
	return &position, nil
}

func (s *GormPositionStore) Create(ctx context.Context, position *models.Position) error {
	return s.db.WithContext(ctx).Create(position).Error
}

func (s *GormPositionStore) MaxDisplayOrder(ctx context.Context, electionID uuid.UUID) (int, error) {
	var max *int
	err := s.db.WithContext(ctx).Model(&models.Position{}).
		Where("election_id = ?", electionID).
		Select("max(display_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
