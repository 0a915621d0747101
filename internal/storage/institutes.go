package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"eballot/internal/apperror"
	"eballot/internal/models"
)

type GormInstituteStore struct {
	db *gorm.DB
}

func NewInstituteStore(db *gorm.DB) *GormInstituteStore {
	return &GormInstituteStore{db: db}
}

func (s *GormInstituteStore) List(ctx context.Context) ([]models.Institute, error) {
	var institutes []models.Institute
	err := s.db.WithContext(ctx).
		Order("type asc").
		Order("code asc").
		Find(&institutes).Error
	return institutes, err
}

func (s *GormInstituteStore) FindByCode(ctx context.Context, code string) (*models.Institute, error) {
	var institute models.Institute
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&institute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("institute", code)
		}
		return nil, err
	}
	return &institute, nil
}
