package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	mu           sync.Mutex
	accounts     map[string]models.Account
	rejections   []models.RejectionRecord
	competitions map[string]models.Competition
	sessions     map[string]models.Session
	participants map[string]models.ParticipantRecord
	attached     map[string][]string
	scores       []models.ScoreEntry

	// clock stamps CreatedAt on participants so ordering is deterministic.
	clock time.Time

	failRecordRejection error
}

func newMemStore() *memStore {
	return &memStore{
		accounts:     make(map[string]models.Account),
		competitions: make(map[string]models.Competition),
		sessions:     make(map[string]models.Session),
		participants: make(map[string]models.ParticipantRecord),
		attached:     make(map[string][]string),
		clock:        time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) GetAccountsByRole(_ context.Context, role models.Role) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Account
	for _, a := range m.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetAccount(_ context.Context, id string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, apperrors.NewNotFound("account", id)
	}
	return &a, nil
}

func (m *memStore) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFound("account", email)
}

func (m *memStore) UpsertAccount(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = m.tick()
	}
	m.accounts[account.ID] = *account
	return nil
}

func (m *memStore) DeleteAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return apperrors.NewNotFound("account", id)
	}
	delete(m.accounts, id)
	return nil
}

func (m *memStore) RecordRejection(_ context.Context, record *models.RejectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRecordRejection != nil {
		return m.failRecordRejection
	}
	m.rejections = append(m.rejections, *record)
	return nil
}

func (m *memStore) PruneRejections(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rejections[:0]
	var pruned int64
	for _, r := range m.rejections {
		if r.RejectedAt.Before(before) {
			pruned++
			continue
		}
		kept = append(kept, r)
	}
	m.rejections = kept
	return pruned, nil
}

func (m *memStore) CreateCompetition(_ context.Context, c *models.Competition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.competitions[c.ID] = *c
	return nil
}

func (m *memStore) GetCompetition(_ context.Context, id string) (*models.Competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.competitions[id]
	if !ok {
		return nil, apperrors.NewNotFound("competition", id)
	}
	return &c, nil
}

func (m *memStore) ListCompetitions(_ context.Context) ([]models.Competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Competition, 0, len(m.competitions))
	for _, c := range m.competitions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SetCompetitionStatusOverride(_ context.Context, id string, override *models.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.competitions[id]
	if !ok {
		return apperrors.NewNotFound("competition", id)
	}
	c.StatusOverride = override
	m.competitions[id] = c
	return nil
}

func (m *memStore) CreateSession(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFound("session", id)
	}
	return &s, nil
}

func (m *memStore) SetSessionStatusOverride(_ context.Context, id string, override *models.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return apperrors.NewNotFound("session", id)
	}
	sess.StatusOverride = override
	m.sessions[id] = sess
	return nil
}

func (m *memStore) ListSessions(_ context.Context, competitionID string) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Session
	for _, s := range m.sessions {
		if s.CompetitionID == competitionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) GetParticipantsByName(_ context.Context, firstName, lastName string) ([]models.ParticipantRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ParticipantRecord
	for _, p := range m.participants {
		if p.FirstName == firstName && p.LastName == lastName {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetParticipantsByAccount(_ context.Context, accountID string) ([]models.ParticipantRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ParticipantRecord
	for _, p := range m.participants {
		if p.AccountID != nil && *p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetParticipant(_ context.Context, id string) (*models.ParticipantRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.participants[id]
	if !ok {
		return nil, apperrors.NewNotFound("participant", id)
	}
	return &p, nil
}

func (m *memStore) CreateParticipant(_ context.Context, p *models.ParticipantRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.tick()
	}
	m.participants[p.ID] = *p
	return nil
}

func (m *memStore) AttachParticipantToSession(_ context.Context, sessionID, participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.attached[sessionID] {
		if id == participantID {
			return nil
		}
	}
	m.attached[sessionID] = append(m.attached[sessionID], participantID)
	return nil
}

func (m *memStore) GetSessionParticipants(_ context.Context, sessionID string) ([]models.ParticipantRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ParticipantRecord
	for _, id := range m.attached[sessionID] {
		out = append(out, m.participants[id])
	}
	return out, nil
}

func (m *memStore) GetScoresForSession(_ context.Context, sessionID string) ([]models.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ScoreEntry
	for _, s := range m.scores {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) GetScoresForParticipant(_ context.Context, participantID string) ([]models.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ScoreEntry
	for _, s := range m.scores {
		if s.ParticipantID == participantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) CreateScore(_ context.Context, score *models.ScoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, *score)
	return nil
}

// memCache is an in-memory RankingCache that counts invalidations.
type memCache struct {
	mu          sync.Mutex
	rows        map[string][]RankedParticipant
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{rows: make(map[string][]RankedParticipant)}
}

func (c *memCache) GetRanking(_ context.Context, key string) ([]RankedParticipant, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.rows[key]
	return rows, ok, nil
}

func (c *memCache) SetRanking(_ context.Context, key string, rows []RankedParticipant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[key] = rows
	return nil
}

func (c *memCache) InvalidateSession(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := RankingKey(sessionID, "")
	for k := range c.rows {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.rows, k)
		}
	}
	c.invalidated = append(c.invalidated, sessionID)
	return nil
}

var (
	_ Store        = (*memStore)(nil)
	_ RankingCache = (*memCache)(nil)
)

func approvedAccount(id string, role models.Role) *models.Account {
	return &models.Account{ID: id, Role: role, Approved: true, Email: id + "@example.com"}
}

func seedAccount(m *memStore, a models.Account) *models.Account {
	if a.Email == "" {
		a.Email = a.ID + "@example.com"
	}
	_ = m.UpsertAccount(context.Background(), &a)
	return &a
}
