package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"eballot/internal/apperror"
	"eballot/internal/models"
)

type GormVoteStore struct {
	db *gorm.DB
}

func NewVoteStore(db *gorm.DB) *GormVoteStore {
	return &GormVoteStore{db: db}
}

func (s *GormVoteStore) HasVoted(ctx context.Context, userID, electionID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("user_id = ? AND election_id = ?", userID, electionID).
		Count(&count).Error
	return count > 0, err
}

// InsertBallot writes every row of the ballot inside one transaction, so a
// duplicate submission that loses the race at the unique index leaves no
// partial set behind.
func (s *GormVoteStore) InsertBallot(ctx context.Context, votes []models.Vote) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&votes).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("You have already voted in this election")
		}
		return err
	}
	return nil
}

func (s *GormVoteStore) ListByInstitute(ctx context.Context, instituteID string) ([]models.Vote, error) {
	var votes []models.Vote
	err := s.db.WithContext(ctx).
		Joins("JOIN elections ON elections.id = votes.election_id").
		Where("elections.institute_id = ?", instituteID).
		Preload("Candidate").
		Find(&votes).Error
	return votes, err
}

func (s *GormVoteStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).Count(&count).Error
	return count, err
}

// CountBallots counts distinct (user, election) pairs, i.e. accepted
// ballots rather than individual position rows.
func (s *GormVoteStore) CountBallots(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Distinct("user_id", "election_id").
		Count(&count).Error
	return count, err
}

func (s *GormVoteStore) CountByInstitute(ctx context.Context) (map[string]int64, error) {
	type row struct {
		InstituteID string
		Count       int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Select("elections.institute_id as institute_id, count(*) as count").
		Joins("JOIN elections ON elections.id = votes.election_id").
		Group("elections.institute_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	breakdown := make(map[string]int64, len(rows))
	for _, r := range rows {
		breakdown[r.InstituteID] = r.Count
	}
	return breakdown, nil
}

func (s *GormVoteStore) ListCastTimesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	return times, err
}

// isUniqueViolation matches Postgres error 23505 from either driver path,
// plus GORM's translated sentinel.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
