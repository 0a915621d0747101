package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"eballot/internal/apperror"
	"eballot/internal/models"
)

// In-memory fakes for the store and cache interfaces. They implement the
// same contracts as the GORM/Redis implementations, including the
// all-or-nothing ballot insert and the JSON round-trip through the cache.

type fakeKV struct {
	mu        sync.Mutex
	data      map[string][]byte
	available bool
	deleted   []string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte), available: true}
}

func (f *fakeKV) Get(_ context.Context, key string, dest interface{}) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	f.data[key] = raw
}

func (f *fakeKV) Delete(_ context.Context, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.deleted = append(f.deleted, key)
}

func (f *fakeKV) Available() bool { return f.available }

func (f *fakeKV) hasKey(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id.String())
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) Save(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) CountStudents(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, u := range f.users {
		if u.Role == models.RoleStudent {
			count++
		}
	}
	return count, nil
}

type fakeInstituteStore struct {
	institutes []models.Institute
}

func (f *fakeInstituteStore) List(_ context.Context) ([]models.Institute, error) {
	return f.institutes, nil
}

func (f *fakeInstituteStore) FindByCode(_ context.Context, code string) (*models.Institute, error) {
	for i := range f.institutes {
		if f.institutes[i].Code == code {
			return &f.institutes[i], nil
		}
	}
	return nil, apperror.NotFound("institute", code)
}

type fakeElectionStore struct {
	mu        sync.Mutex
	elections map[uuid.UUID]*models.Election
	order     []uuid.UUID
}

func newFakeElectionStore() *fakeElectionStore {
	return &fakeElectionStore{elections: make(map[uuid.UUID]*models.Election)}
}

func (f *fakeElectionStore) List(_ context.Context) ([]models.Election, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Election, 0, len(f.order))
	// newest first
	for i := len(f.order) - 1; i >= 0; i-- {
		if e, ok := f.elections[f.order[i]]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeElectionStore) ListActive(_ context.Context, instituteID string) ([]models.Election, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Election, 0)
	for _, id := range f.order {
		e, ok := f.elections[id]
		if !ok || e.Status != models.ElectionActive {
			continue
		}
		if instituteID != "" && e.InstituteID != instituteID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeElectionStore) FindByID(_ context.Context, id uuid.UUID) (*models.Election, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.elections[id]
	if !ok {
		return nil, apperror.NotFound("election", id.String())
	}
	copied := *e
	return &copied, nil
}

func (f *fakeElectionStore) Create(_ context.Context, election *models.Election) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if election.ID == uuid.Nil {
		election.ID = uuid.New()
	}
	election.CreatedAt = time.Now()
	stored := *election
	f.elections[election.ID] = &stored
	f.order = append(f.order, election.ID)
	return nil
}

func (f *fakeElectionStore) Save(_ context.Context, election *models.Election) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.elections[election.ID]; !ok {
		return apperror.NotFound("election", election.ID.String())
	}
	stored := *election
	f.elections[election.ID] = &stored
	return nil
}

func (f *fakeElectionStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.elections[id]; !ok {
		return apperror.NotFound("election", id.String())
	}
	delete(f.elections, id)
	return nil
}

func (f *fakeElectionStore) CountByStatus(_ context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, e := range f.elections {
		if e.Status == status {
			count++
		}
	}
	return count, nil
}

type fakePositionStore struct {
	mu        sync.Mutex
	positions map[uuid.UUID]*models.Position
}

func newFakePositionStore() *fakePositionStore {
	return &fakePositionStore{positions: make(map[uuid.UUID]*models.Position)}
}

func (f *fakePositionStore) ListByElection(_ context.Context, electionID uuid.UUID) ([]models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Position, 0)
	for _, p := range f.positions {
		if p.ElectionID == electionID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f *fakePositionStore) FindByID(_ context.Context, id uuid.UUID) (*models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.positions[id]
	if !ok {
		return nil, apperror.NotFound("position", id.String())
	}
	copied := *p
	return &copied, nil
}

func (f *fakePositionStore) FindByTitle(_ context.Context, electionID uuid.UUID, title string) (*models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.positions {
		if p.ElectionID == electionID && p.Title == title {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("position", title)
}

func (f *fakePositionStore) Create(_ context.Context, position *models.Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if position.ID == uuid.Nil {
		position.ID = uuid.New()
	}
	stored := *position
	f.positions[position.ID] = &stored
	return nil
}

func (f *fakePositionStore) MaxDisplayOrder(_ context.Context, electionID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, p := range f.positions {
		if p.ElectionID == electionID && p.DisplayOrder > max {
			max = p.DisplayOrder
		}
	}
	return max, nil
}

type fakeCandidateStore struct {
	mu         sync.Mutex
	candidates map[uuid.UUID]*models.Candidate
	positions  *fakePositionStore
}

func newFakeCandidateStore(positions *fakePositionStore) *fakeCandidateStore {
	return &fakeCandidateStore{candidates: make(map[uuid.UUID]*models.Candidate), positions: positions}
}

func (f *fakeCandidateStore) List(_ context.Context) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Candidate, 0, len(f.candidates))
	for _, c := range f.candidates {
		out = append(out, f.withPosition(c))
	}
	return out, nil
}

func (f *fakeCandidateStore) ListByElection(_ context.Context, electionID uuid.UUID) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Candidate, 0)
	for _, c := range f.candidates {
		pos, ok := f.positions.positions[c.PositionID]
		if !ok || pos.ElectionID != electionID {
			continue
		}
		out = append(out, f.withPosition(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.DisplayOrder < out[j].Position.DisplayOrder
	})
	return out, nil
}

func (f *fakeCandidateStore) withPosition(c *models.Candidate) models.Candidate {
	copied := *c
	if pos, ok := f.positions.positions[c.PositionID]; ok {
		posCopy := *pos
		copied.Position = &posCopy
	}
	return copied
}

func (f *fakeCandidateStore) FindByID(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.candidates[id]
	if !ok {
		return nil, apperror.NotFound("candidate", id.String())
	}
	copied := f.withPosition(c)
	return &copied, nil
}

func (f *fakeCandidateStore) Create(_ context.Context, candidate *models.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	stored := *candidate
	f.candidates[candidate.ID] = &stored
	return nil
}

func (f *fakeCandidateStore) Save(_ context.Context, candidate *models.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *candidate
	stored.Position = nil
	f.candidates[candidate.ID] = &stored
	return nil
}

func (f *fakeCandidateStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.candidates[id]; !ok {
		return apperror.NotFound("candidate", id.String())
	}
	delete(f.candidates, id)
	return nil
}

type fakeVoteStore struct {
	mu sync.Mutex
	// electionInstitutes maps an election to its institute code, standing
	// in for the join the real store performs.
	electionInstitutes map[uuid.UUID]string
	candidates         map[uuid.UUID]*models.Candidate
	votes              []models.Vote
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{
		electionInstitutes: make(map[uuid.UUID]string),
		candidates:         make(map[uuid.UUID]*models.Candidate),
	}
}

func (f *fakeVoteStore) HasVoted(_ context.Context, userID, electionID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.votes {
		if v.UserID == userID && v.ElectionID == electionID {
			return true, nil
		}
	}
	return false, nil
}

// InsertBallot mirrors the transactional contract: if any row collides on
// (user, position), nothing is inserted and a Conflict comes back.
func (f *fakeVoteStore) InsertBallot(_ context.Context, votes []models.Vote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool, len(f.votes))
	for _, v := range f.votes {
		seen[v.UserID.String()+"|"+v.PositionID.String()] = true
	}
	for _, v := range votes {
		key := v.UserID.String() + "|" + v.PositionID.String()
		if seen[key] {
			return apperror.Conflict("You have already voted in this election")
		}
		seen[key] = true
	}
	now := time.Now()
	for i := range votes {
		if votes[i].ID == uuid.Nil {
			votes[i].ID = uuid.New()
		}
		votes[i].CreatedAt = now
		f.votes = append(f.votes, votes[i])
	}
	return nil
}

func (f *fakeVoteStore) ListByInstitute(_ context.Context, instituteID string) ([]models.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Vote, 0)
	for _, v := range f.votes {
		if f.electionInstitutes[v.ElectionID] != instituteID {
			continue
		}
		copied := v
		if v.CandidateID != nil {
			if c, ok := f.candidates[*v.CandidateID]; ok {
				candCopy := *c
				copied.Candidate = &candCopy
			}
		}
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeVoteStore) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.votes)), nil
}

func (f *fakeVoteStore) CountBallots(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pairs := make(map[string]bool)
	for _, v := range f.votes {
		pairs[v.UserID.String()+"|"+v.ElectionID.String()] = true
	}
	return int64(len(pairs)), nil
}

func (f *fakeVoteStore) CountByInstitute(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int64)
	for _, v := range f.votes {
		if code, ok := f.electionInstitutes[v.ElectionID]; ok {
			out[code]++
		}
	}
	return out, nil
}

func (f *fakeVoteStore) ListCastTimesSince(_ context.Context, since time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Time, 0)
	for _, v := range f.votes {
		if !v.CreatedAt.Before(since) {
			out = append(out, v.CreatedAt)
		}
	}
	return out, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []sentMail
	fail  error
	codes map[string]string
}

type sentMail struct {
	to   string
	code string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: make(map[string]string)}
}

func (f *fakeMailer) SendOTP(to, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{to: to, code: code})
	f.codes[to] = code
	return nil
}

func (f *fakeMailer) lastCode(to string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[to]
	if !ok {
		return "", fmt.Errorf("no OTP sent to %s", to)
	}
	return code, nil
}
