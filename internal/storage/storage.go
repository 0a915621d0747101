// Package storage defines one store interface per entity, backed by GORM
// over Postgres. Services depend on the interfaces only, so tests swap in
// in-memory fakes without a database.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"eballot/internal/models"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	CountStudents(ctx context.Context) (int64, error)
}

type InstituteStore interface {
	List(ctx context.Context) ([]models.Institute, error)
	FindByCode(ctx context.Context, code string) (*models.Institute, error)
}

type ElectionStore interface {
	List(ctx context.Context) ([]models.Election, error)
	ListActive(ctx context.Context, instituteID string) ([]models.Election, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Election, error)
	Create(ctx context.Context, election *models.Election) error
	Save(ctx context.Context, election *models.Election) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type PositionStore interface {
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]models.Position, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Position, error)
	FindByTitle(ctx context.Context, electionID uuid.UUID, title string) (*models.Position, error)
	Create(ctx context.Context, position *models.Position) error
	MaxDisplayOrder(ctx context.Context, electionID uuid.UUID) (int, error)
}

type CandidateStore interface {
	List(ctx context.Context) ([]models.Candidate, error)
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]models.Candidate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	Create(ctx context.Context, candidate *models.Candidate) error
	Save(ctx context.Context, candidate *models.Candidate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VoteStore interface {
	HasVoted(ctx context.Context, userID, electionID uuid.UUID) (bool, error)
	// InsertBallot persists all rows in one transaction. A unique-constraint
	// violation (a racing duplicate ballot) aborts the whole batch and is
	// returned as an apperror.Conflict.
	InsertBallot(ctx context.Context, votes []models.Vote) error
	ListByInstitute(ctx context.Context, instituteID string) ([]models.Vote, error)
	CountAll(ctx context.Context) (int64, error)
	CountBallots(ctx context.Context) (int64, error)
	CountByInstitute(ctx context.Context) (map[string]int64, error)
	ListCastTimesSince(ctx context.Context, since time.Time) ([]time.Time, error)
}
