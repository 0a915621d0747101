package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eballot/internal/apperror"
	"eballot/internal/models"
)

type GormElectionStore struct {
	db *gorm.DB
}

func NewElectionStore(db *gorm.DB) *GormElectionStore {
	return &GormElectionStore{db: db}
}

func (s *GormElectionStore) List(ctx context.Context) ([]models.Election, error) {
	var elections []models.Election
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&elections).Error
	return elections, err
}

func (s *GormElectionStore) ListActive(ctx context.Context, instituteID string) ([]models.Election, error) {
	var elections []models.Election
	q := s.db.WithContext(ctx).Where("status = ?", models.ElectionActive)
	if instituteID != "" {
		q = q.Where("institute_id = ?", instituteID)
	}
	err := q.Order("start_date desc").Find(&elections).Error
	return elections, err
}

func (s *GormElectionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Election, error) {
	var election models.Election
	if err := s.db.WithContext(ctx).First(&election, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("election", id.String())
		}
		return nil, err
	}
	return &election, nil
}

func (s *GormElectionStore) Create(ctx context.Context, election *models.Election) error {
	return s.db.WithContext(ctx).Create(election).Error
}

func (s *GormElectionStore) Save(ctx context.Context, election *models.Election) error {
	return s.db.WithContext(ctx).Save(election).Error
}

// Delete removes the election row; positions, candidates and votes go with
// it through the store's cascading foreign keys.
func (s *GormElectionStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Election{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("election", id.String())
	}
	return nil
}

func (s *GormElectionStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Election{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
