package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"eballot/internal/apperror"
	"eballot/internal/models"
	"eballot/internal/storage"
)

const (
	leaderboardTTL = 10 * time.Second
	electionsTTL   = time.Minute
	candidatesTTL  = 2 * time.Minute

	// AbstainID marks a nil candidate reference on the wire.
	AbstainID = "abstain"
)

// LeaderboardEntry is one row of the per-institute tally, sorted by votes.
type LeaderboardEntry struct {
	CandidateID string  `json:"candidateId"`
	Name        string  `json:"name"`
	ImageURL    *string `json:"imageUrl"`
	Votes       int     `json:"votes"`
}

// SelectionInput is one position selection as submitted by the client.
// CandidateID is a candidate uuid or the literal "abstain".
type SelectionInput struct {
	PositionID  string `json:"positionId" binding:"required"`
	CandidateID string `json:"candidateId" binding:"required"`
}

// PositionBallot groups a position with its candidates for ballot display.
type PositionBallot struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	DisplayOrder int               `json:"display_order"`
	Candidates   []BallotCandidate `json:"candidates"`
}

type BallotCandidate struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Platform string  `json:"platform"`
	ImageURL *string `json:"image_url"`
}

// VoteService owns the NotVoted -> Voted transition and the hot aggregate
// reads in front of it.
type VoteService struct {
	votes      storage.VoteStore
	elections  storage.ElectionStore
	candidates storage.CandidateStore

	leaderboardCache KV
	electionsCache   KV
	candidatesCache  KV

	log *logrus.Logger
}

func NewVoteService(
	votes storage.VoteStore,
	elections storage.ElectionStore,
	candidates storage.CandidateStore,
	leaderboardCache, electionsCache, candidatesCache KV,
	log *logrus.Logger,
) *VoteService {
	return &VoteService{
		votes:            votes,
		elections:        elections,
		candidates:       candidates,
		leaderboardCache: leaderboardCache,
		electionsCache:   electionsCache,
		candidatesCache:  candidatesCache,
		log:              log,
	}
}

// GetLeaderboard tallies every vote whose election belongs to the
// institute, one bucket per candidate plus a synthetic abstain bucket.
// Ties keep first-observed order; the result is cached briefly because
// this is the most frequently polled read.
func (s *VoteService) GetLeaderboard(ctx context.Context, instituteID string) ([]LeaderboardEntry, error) {
	var cached []LeaderboardEntry
	if s.leaderboardCache.Get(ctx, instituteID, &cached) {
		return cached, nil
	}

	votes, err := s.votes.ListByInstitute(ctx, instituteID)
	if err != nil {
		return nil, fmt.Errorf("loading votes: %w", err)
	}

	buckets := make(map[string]*LeaderboardEntry)
	order := make([]string, 0)
	for _, v := range votes {
		id := AbstainID
		if v.CandidateID != nil {
			id = v.CandidateID.String()
		}
		entry, ok := buckets[id]
		if !ok {
			entry = &LeaderboardEntry{CandidateID: id}
			if id == AbstainID {
				entry.Name = "Abstain"
			} else if v.Candidate != nil {
				entry.Name = v.Candidate.Name
				entry.ImageURL = v.Candidate.ImageURL
			} else {
				entry.Name = fmt.Sprintf("Candidate %s", id)
			}
			buckets[id] = entry
			order = append(order, id)
		}
		entry.Votes++
	}

	leaderboard := make([]LeaderboardEntry, 0, len(order))
	for _, id := range order {
		leaderboard = append(leaderboard, *buckets[id])
	}
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].Votes > leaderboard[j].Votes
	})

	s.leaderboardCache.Set(ctx, instituteID, leaderboard, leaderboardTTL)
	return leaderboard, nil
}

// CastVote persists one ballot for (voter, election). The HasVoted check
// is a courtesy; the store's unique index makes the insert race-safe, and
// the whole batch is rejected when a concurrent duplicate wins.
func (s *VoteService) CastVote(ctx context.Context, voterID uuid.UUID, electionID string, selections []SelectionInput) (int, error) {
	eid, err := uuid.Parse(electionID)
	if err != nil {
		return 0, apperror.InvalidInput("electionId", "electionId must be a valid uuid")
	}
	if len(selections) == 0 {
		return 0, apperror.InvalidInput("votes", "at least one position selection is required")
	}

	voted, err := s.votes.HasVoted(ctx, voterID, eid)
	if err != nil {
		return 0, fmt.Errorf("checking vote status: %w", err)
	}
	if voted {
		return 0, apperror.Conflict("You have already voted in this election")
	}

	election, err := s.elections.FindByID(ctx, eid)
	if err != nil {
		return 0, err
	}

	rows := make([]models.Vote, 0, len(selections))
	for _, sel := range selections {
		pid, err := uuid.Parse(sel.PositionID)
		if err != nil {
			return 0, apperror.InvalidInput("positionId", "positionId must be a valid uuid")
		}
		row := models.Vote{
			UserID:     voterID,
			ElectionID: eid,
			PositionID: pid,
		}
		if sel.CandidateID != AbstainID {
			cid, err := uuid.Parse(sel.CandidateID)
			if err != nil {
				return 0, apperror.InvalidInput("candidateId", `candidateId must be a valid uuid or "abstain"`)
			}
			row.CandidateID = &cid
		}
		rows = append(rows, row)
	}

	if err := s.votes.InsertBallot(ctx, rows); err != nil {
		return 0, err
	}

	s.leaderboardCache.Delete(ctx, election.InstituteID)
	s.candidatesCache.Delete(ctx, electionID)

	s.log.Infof("ballot accepted: voter=%s election=%s positions=%d", voterID, electionID, len(rows))
	return len(rows), nil
}

func (s *VoteService) HasVoted(ctx context.Context, voterID uuid.UUID, electionID string) (bool, error) {
	eid, err := uuid.Parse(electionID)
	if err != nil {
		return false, apperror.InvalidInput("electionId", "electionId must be a valid uuid")
	}
	return s.votes.HasVoted(ctx, voterID, eid)
}

// GetActiveElections lists active elections, scoped to the caller's
// institute when set, cached for a minute per scope.
func (s *VoteService) GetActiveElections(ctx context.Context, instituteID *string) ([]models.Election, error) {
	key := "all"
	scope := ""
	if instituteID != nil && *instituteID != "" {
		key = *instituteID
		scope = *instituteID
	}

	var cached []models.Election
	if s.electionsCache.Get(ctx, key, &cached) {
		return cached, nil
	}

	elections, err := s.elections.ListActive(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("loading active elections: %w", err)
	}

	s.electionsCache.Set(ctx, key, elections, electionsTTL)
	return elections, nil
}

// GetElectionCandidates returns the ballot structure: positions in display
// order, each with its candidates.
func (s *VoteService) GetElectionCandidates(ctx context.Context, electionID string) ([]PositionBallot, error) {
	eid, err := uuid.Parse(electionID)
	if err != nil {
		return nil, apperror.InvalidInput("electionId", "electionId must be a valid uuid")
	}

	var cached []PositionBallot
	if s.candidatesCache.Get(ctx, electionID, &cached) {
		return cached, nil
	}

	candidates, err := s.candidates.ListByElection(ctx, eid)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}

	grouped := make(map[uuid.UUID]*PositionBallot)
	order := make([]uuid.UUID, 0)
	for _, c := range candidates {
		if c.Position == nil {
			continue
		}
		ballot, ok := grouped[c.PositionID]
		if !ok {
			ballot = &PositionBallot{
				ID:           c.Position.ID.String(),
				Title:        c.Position.Title,
				Description:  c.Position.Description,
				DisplayOrder: c.Position.DisplayOrder,
				Candidates:   make([]BallotCandidate, 0, 4),
			}
			grouped[c.PositionID] = ballot
			order = append(order, c.PositionID)
		}
		ballot.Candidates = append(ballot.Candidates, BallotCandidate{
			ID:       c.ID.String(),
			Name:     c.Name,
			Platform: c.Platform,
			ImageURL: c.ImageURL,
		})
	}

	result := make([]PositionBallot, 0, len(order))
	for _, pid := range order {
		result = append(result, *grouped[pid])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DisplayOrder < result[j].DisplayOrder
	})

	s.candidatesCache.Set(ctx, electionID, result, candidatesTTL)
	return result, nil
}
