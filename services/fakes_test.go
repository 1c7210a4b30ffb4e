package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/football-championship/models"
	"github.com/Dosada05/football-championship/repositories"
	"github.com/Dosada05/football-championship/storage"
	"github.com/jonboulle/clockwork"
)

// In-memory stand-ins for the postgres repositories. They copy on read
// and write so services cannot mutate stored state without going through
// Update, same as a real database.

type fakeTeamRepo struct {
	mu     sync.Mutex
	nextID int
	teams  map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, teams: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = r.nextID
	r.nextID++
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) GetByName(_ context.Context, _ repositories.SQLExecutor, name string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListByGroup(_ context.Context, _ repositories.SQLExecutor, groupNumber int) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teams := make([]*models.Team, 0)
	for _, t := range r.teams {
		if t.GroupNumber == groupNumber {
			cp := *t
			teams = append(teams, &cp)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	for id, t := range r.teams {
		if id != team.ID && t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) ApplyStatsDelta(_ context.Context, _ repositories.SQLExecutor, teamID int, delta repositories.TeamStatsDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.TotalGoals += delta.TotalGoals
	t.MatchPoints += delta.MatchPoints
	t.AlternatePoints += delta.AlternatePoints
	t.MatchesPlayed += delta.MatchesPlayed
	return nil
}

func (r *fakeTeamRepo) LockForUpdate(_ context.Context, _ repositories.SQLExecutor, teamIDs []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range teamIDs {
		if _, ok := r.teams[id]; !ok {
			return repositories.ErrTeamNotFound
		}
	}
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1}
}

func (r *fakeMatchRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, matches []*models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range matches {
		m.ID = r.nextID
		r.nextID++
		m.CreatedAt = time.Now()
		cp := *m
		r.matches = append(r.matches, &cp)
	}
	return nil
}

func (r *fakeMatchRepo) ListRecent(_ context.Context, _ repositories.SQLExecutor, limit int) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Match, 0, limit)
	for i := len(r.matches) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.matches[i]
		out = append(out, &cp)
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	nextID  int
	entries []*models.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{nextID: 1}
}

func (r *fakeAuditRepo) Create(_ context.Context, _ repositories.SQLExecutor, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeAuditRepo) ListRecent(_ context.Context, _ repositories.SQLExecutor, limit int) ([]*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AuditLog, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAuditRepo) DeleteOlderThan(_ context.Context, _ repositories.SQLExecutor, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	var removed int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

// fakeTxRunner runs the function without a transaction; the fakes apply
// writes immediately.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

// testEnv wires the services against the fakes with a controllable clock.
type testEnv struct {
	clock     *clockwork.FakeClock
	teamRepo  *fakeTeamRepo
	matchRepo *fakeMatchRepo
	auditRepo *fakeAuditRepo
	uploader  *fakeUploader

	teams    TeamService
	matches  MatchService
	rankings RankingService
	audit    AuditService
}

func newTestEnv() *testEnv {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	teamRepo := newFakeTeamRepo()
	matchRepo := newFakeMatchRepo()
	auditRepo := newFakeAuditRepo()
	uploader := newFakeUploader()

	audit := NewAuditService(auditRepo, clock, logger)
	return &testEnv{
		clock:     clock,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		auditRepo: auditRepo,
		uploader:  uploader,
		teams:     NewTeamService(teamRepo, audit, uploader, clock),
		matches:   NewMatchService(fakeTxRunner{}, teamRepo, matchRepo, audit, StandardPointsPolicy, AlternatePointsPolicy),
		rankings:  NewRankingService(teamRepo, audit, RankingConfig{}),
		audit:     audit,
	}
}

func (e *testEnv) mustAddTeam(t *testing.T, name, date string, group int) *models.Team {
	t.Helper()
	result, err := e.teams.AddTeams(context.Background(), []CreateTeamInput{
		{Name: name, RegistrationDate: date, GroupNumber: group},
	})
	if err != nil {
		t.Fatalf("AddTeams(%s) returned error: %v", name, err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("AddTeams(%s) reported errors: %v", name, result.Errors)
	}
	if len(result.Teams) != 1 {
		t.Fatalf("AddTeams(%s) stored %d teams, want 1", name, len(result.Teams))
	}
	return result.Teams[0]
}
