package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"eballot/internal/apperror"
	"eballot/internal/models"
	"eballot/internal/storage"
)

// ElectionInput carries validated election fields from the controller.
type ElectionInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	InstituteID string    `json:"institute_id" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Status      string    `json:"status"`
}

// CandidateInput carries validated candidate fields.
type CandidateInput struct {
	Name           string  `json:"name" binding:"required"`
	PositionID     string  `json:"position_id" binding:"required,uuid"`
	College        string  `json:"college"`
	Description    string  `json:"description"`
	PastLeadership string  `json:"past_leadership"`
	Grades         string  `json:"grades"`
	Qualifications string  `json:"qualifications"`
	Platform       string  `json:"platform"`
	ImageURL       *string `json:"image_url"`
}

// Stats is the headline analytics block.
type Stats struct {
	TotalVoters        int64   `json:"totalVoters"`
	VotesCast          int64   `json:"votesCast"`
	TurnoutRate        float64 `json:"turnoutRate"`
	ActiveElections    int64   `json:"activeElections"`
	CompletedElections int64   `json:"completedElections"`
}

type HourlyBucket struct {
	Hour  string `json:"hour"`
	Votes int64  `json:"votes"`
}

// Analytics mixes two units on purpose: Stats.VotesCast counts accepted
// ballots (distinct user+election pairs, keeping TurnoutRate ≤ 100% for
// one ballot per voter per election), while InstituteBreakdown and
// HourlyVotes count individual position rows.
type Analytics struct {
	Stats              Stats            `json:"stats"`
	InstituteBreakdown map[string]int64 `json:"instituteBreakdown"`
	HourlyVotes        []HourlyBucket   `json:"hourlyVotes"`
}

// AdminService is the election/position/candidate registry plus turnout
// analytics. Every mutation that can affect a cached aggregate invalidates
// the dependent keys before returning, bounding staleness to the
// operation's own latency rather than the TTL.
type AdminService struct {
	elections  storage.ElectionStore
	positions  storage.PositionStore
	candidates storage.CandidateStore
	votes      storage.VoteStore
	users      storage.UserStore

	leaderboardCache KV
	electionsCache   KV
	candidatesCache  KV

	log *logrus.Logger
}

func NewAdminService(
	elections storage.ElectionStore,
	positions storage.PositionStore,
	candidates storage.CandidateStore,
	votes storage.VoteStore,
	users storage.UserStore,
	leaderboardCache, electionsCache, candidatesCache KV,
	log *logrus.Logger,
) *AdminService {
	return &AdminService{
		elections:        elections,
		positions:        positions,
		candidates:       candidates,
		votes:            votes,
		users:            users,
		leaderboardCache: leaderboardCache,
		electionsCache:   electionsCache,
		candidatesCache:  candidatesCache,
		log:              log,
	}
}

// Elections

func (s *AdminService) GetElections(ctx context.Context) ([]models.Election, error) {
	return s.elections.List(ctx)
}

func (s *AdminService) CreateElection(ctx context.Context, in ElectionInput) (*models.Election, error) {
	status := in.Status
	if status == "" {
		status = models.ElectionUpcoming
	}
	if !models.ValidStatus(status) {
		return nil, apperror.InvalidInput("status", "status must be upcoming, active or completed")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, apperror.InvalidInput("end_date", "end_date must not precede start_date")
	}

	election := &models.Election{
		Title:       in.Title,
		Description: in.Description,
		InstituteID: in.InstituteID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      status,
	}
	if err := s.elections.Create(ctx, election); err != nil {
		return nil, fmt.Errorf("creating election: %w", err)
	}

	s.invalidateElectionLists(ctx, in.InstituteID)
	return election, nil
}

func (s *AdminService) UpdateElection(ctx context.Context, id string, in ElectionInput) (*models.Election, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.InvalidInput("id", "id must be a valid uuid")
	}
	election, err := s.elections.FindByID(ctx, eid)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = election.Status
	}
	if !models.ValidStatus(status) {
		return nil, apperror.InvalidInput("status", "status must be upcoming, active or completed")
	}

	previousInstitute := election.InstituteID
	election.Title = in.Title
	election.Description = in.Description
	election.InstituteID = in.InstituteID
	election.StartDate = in.StartDate
	election.EndDate = in.EndDate
	election.Status = status

	if err := s.elections.Save(ctx, election); err != nil {
		return nil, fmt.Errorf("updating election: %w", err)
	}

	s.invalidateElectionLists(ctx, previousInstitute)
	s.invalidateElectionLists(ctx, election.InstituteID)
	s.leaderboardCache.Delete(ctx, previousInstitute)
	s.leaderboardCache.Delete(ctx, election.InstituteID)
	return election, nil
}

func (s *AdminService) DeleteElection(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return apperror.InvalidInput("id", "id must be a valid uuid")
	}
	election, err := s.elections.FindByID(ctx, eid)
	if err != nil {
		return err
	}
	if err := s.elections.Delete(ctx, eid); err != nil {
		return err
	}

	s.invalidateElectionLists(ctx, election.InstituteID)
	s.leaderboardCache.Delete(ctx, election.InstituteID)
	s.candidatesCache.Delete(ctx, id)
	s.log.Infof("election deleted: %s", id)
	return nil
}

// Positions

func (s *AdminService) GetPositionsByElection(ctx context.Context, electionID string) ([]models.Position, error) {
	eid, err := uuid.Parse(electionID)
	if err != nil {
		return nil, apperror.InvalidInput("electionId", "electionId must be a valid uuid")
	}
	return s.positions.ListByElection(ctx, eid)
}

// FindOrCreatePosition is idempotent by (election, title): a second call
// with the same title returns the existing row. When displayOrder is nil
// the position slots in after the election's current maximum.
func (s *AdminService) FindOrCreatePosition(ctx context.Context, electionID, title string, displayOrder *int) (*models.Position, bool, error) {
	eid, err := uuid.Parse(electionID)
	if err != nil {
		return nil, false, apperror.InvalidInput("election_id", "election_id must be a valid uuid")
	}
	if _, err := s.elections.FindByID(ctx, eid); err != nil {
		return nil, false, err
	}

	existing, err := s.positions.FindByTitle(ctx, eid, title)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, err
	}

	order := 0
	if displayOrder != nil {
		order = *displayOrder
	} else {
		max, err := s.positions.MaxDisplayOrder(ctx, eid)
		if err != nil {
			return nil, false, fmt.Errorf("assigning display order: %w", err)
		}
		order = max + 1
	}

	position := &models.Position{
		ElectionID:   eid,
		Title:        title,
		DisplayOrder: order,
	}
	if err := s.positions.Create(ctx, position); err != nil {
		return nil, false, fmt.Errorf("creating position: %w", err)
	}

	s.candidatesCache.Delete(ctx, electionID)
	return position, true, nil
}

// Candidates

func (s *AdminService) GetCandidates(ctx context.Context) ([]models.Candidate, error) {
	return s.candidates.List(ctx)
}

func (s *AdminService) CreateCandidate(ctx context.Context, in CandidateInput) (*models.Candidate, error) {
	pid, err := uuid.Parse(in.PositionID)
	if err != nil {
		return nil, apperror.InvalidInput("position_id", "position_id must be a valid uuid")
	}
	// Orphan guard: the position (and through it the election) must exist.
	position, err := s.positions.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	candidate := &models.Candidate{
		PositionID:     pid,
		Name:           in.Name,
		College:        in.College,
		Description:    in.Description,
		PastLeadership: in.PastLeadership,
		Grades:         in.Grades,
		Qualifications: in.Qualifications,
		Platform:       in.Platform,
		ImageURL:       in.ImageURL,
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("creating candidate: %w", err)
	}

	s.candidatesCache.Delete(ctx, position.ElectionID.String())
	return candidate, nil
}

func (s *AdminService) UpdateCandidate(ctx context.Context, id string, in CandidateInput) (*models.Candidate, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.InvalidInput("id", "id must be a valid uuid")
	}
	candidate, err := s.candidates.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	pid, err := uuid.Parse(in.PositionID)
	if err != nil {
		return nil, apperror.InvalidInput("position_id", "position_id must be a valid uuid")
	}
	position, err := s.positions.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	candidate.PositionID = pid
	candidate.Name = in.Name
	candidate.College = in.College
	candidate.Description = in.Description
	candidate.PastLeadership = in.PastLeadership
	candidate.Grades = in.Grades
	candidate.Qualifications = in.Qualifications
	candidate.Platform = in.Platform
	candidate.ImageURL = in.ImageURL

	if err := s.candidates.Save(ctx, candidate); err != nil {
		return nil, fmt.Errorf("updating candidate: %w", err)
	}

	s.invalidateCandidateAggregate(ctx, position)
	return candidate, nil
}

func (s *AdminService) DeleteCandidate(ctx context.Context, id string) error {
	cid, err := uuid.Parse(id)
	if err != nil {
		return apperror.InvalidInput("id", "id must be a valid uuid")
	}
	candidate, err := s.candidates.FindByID(ctx, cid)
	if err != nil {
		return err
	}
	if err := s.candidates.Delete(ctx, cid); err != nil {
		return err
	}
	if candidate.Position != nil {
		s.invalidateCandidateAggregate(ctx, candidate.Position)
	}
	return nil
}

// Analytics

func (s *AdminService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	totalVoters, err := s.users.CountStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting voters: %w", err)
	}
	votesCast, err := s.votes.CountBallots(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting ballots: %w", err)
	}
	active, err := s.elections.CountByStatus(ctx, models.ElectionActive)
	if err != nil {
		return nil, fmt.Errorf("counting active elections: %w", err)
	}
	completed, err := s.elections.CountByStatus(ctx, models.ElectionCompleted)
	if err != nil {
		return nil, fmt.Errorf("counting completed elections: %w", err)
	}
	breakdown, err := s.votes.CountByInstitute(ctx)
	if err != nil {
		return nil, fmt.Errorf("institute breakdown: %w", err)
	}

	turnout := 0.0
	if totalVoters > 0 {
		turnout = float64(votesCast) / float64(totalVoters) * 100
	}

	hourly, err := s.hourlyVotes(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Stats: Stats{
			TotalVoters:        totalVoters,
			VotesCast:          votesCast,
			TurnoutRate:        turnout,
			ActiveElections:    active,
			CompletedElections: completed,
		},
		InstituteBreakdown: breakdown,
		HourlyVotes:        hourly,
	}, nil
}

// hourlyVotes buckets the last 24 hours of votes by local hour-of-day
// label, oldest hour first.
func (s *AdminService) hourlyVotes(ctx context.Context, now time.Time) ([]HourlyBucket, error) {
	times, err := s.votes.ListCastTimesSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("hourly votes: %w", err)
	}

	counts := make(map[string]int64)
	for _, t := range times {
		counts[t.Local().Format("3PM")]++
	}

	buckets := make([]HourlyBucket, 0, 24)
	for i := 23; i >= 0; i-- {
		label := now.Add(-time.Duration(i) * time.Hour).Format("3PM")
		buckets = append(buckets, HourlyBucket{Hour: label, Votes: counts[label]})
	}
	return buckets, nil
}

func (s *AdminService) invalidateElectionLists(ctx context.Context, instituteID string) {
	s.electionsCache.Delete(ctx, instituteID)
	s.electionsCache.Delete(ctx, "all")
}

func (s *AdminService) invalidateCandidateAggregate(ctx context.Context, position *models.Position) {
	electionID := position.ElectionID.String()
	s.candidatesCache.Delete(ctx, electionID)
	if election, err := s.elections.FindByID(ctx, position.ElectionID); err == nil {
		s.leaderboardCache.Delete(ctx, election.InstituteID)
	}
}
