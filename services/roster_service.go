package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"gym-scoring-system/models"

	"github.com/google/uuid"
)

// RosterEntry is one free-text line of a submitted roster.
type RosterEntry struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	ClubName  string `json:"clubName" validate:"max=150"`
	Level     string `json:"level" validate:"max=32"`
}

// EntryStatus is the per-entry outcome of a roster submission.
type EntryStatus string

const (
	EntryMatched     EntryStatus = "matched"
	EntryProvisioned EntryStatus = "provisioned"
	EntryFailed      EntryStatus = "failed"
)

// EntryOutcome reports how one roster entry was resolved.
type EntryOutcome struct {
	Index         int         `json:"index"`
	Entry         RosterEntry `json:"entry"`
	Status        EntryStatus `json:"status"`
	Matched       bool        `json:"matched"`
	ParticipantID string      `json:"participantId,omitempty"`
	AccountID     string      `json:"accountId,omitempty"`
	// Created is true when a new participant record was written.
	Created bool `json:"created"`
	// Ambiguous is true when more than one account matched and the first one
	// was taken.
	Ambiguous  bool   `json:"ambiguous,omitempty"`
	Candidates int    `json:"candidates,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RosterResult is the outcome of a whole submission.
type RosterResult struct {
	SessionID   string         `json:"sessionId"`
	Outcomes    []EntryOutcome `json:"outcomes"`
	Matched     int            `json:"matched"`
	Provisioned int            `json:"provisioned"`
	Failed      int            `json:"failed"`
}

// IdentityMatcher finds the accounts a roster entry may refer to. The first
// returned account is the one that gets bound.
type IdentityMatcher interface {
	Match(ctx context.Context, entry RosterEntry) ([]models.Account, error)
}

// ExactNameMatcher matches gymnast accounts whose first and last names equal
// the entry byte for byte. Candidates are ordered by account id so the same
// entry always binds to the same account.
type ExactNameMatcher struct {
	Accounts AccountStore
}

func (m ExactNameMatcher) Match(ctx context.Context, entry RosterEntry) ([]models.Account, error) {
	gymnasts, err := m.Accounts.GetAccountsByRole(ctx, models.RoleGymnast)
	if err != nil {
		return nil, err
	}
	var matches []models.Account
	for _, g := range gymnasts {
		if g.FirstName == entry.FirstName && g.LastName == entry.LastName {
			matches = append(matches, g)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

// RosterService resolves submitted rosters into participant records.
type RosterService struct {
	Sessions CompetitionStore
	Roster   RosterStore
	Matcher  IdentityMatcher
	Cache    RankingCache
}

func NewRosterService(store Store, cache RankingCache) *RosterService {
	return &RosterService{
		Sessions: store,
		Roster:   store,
		Matcher:  ExactNameMatcher{Accounts: store},
		Cache:    cache,
	}
}

// SubmitRoster resolves every entry independently and attaches the result to
// the session. A failing entry is reported in its outcome and never aborts
// the rest of the batch.
func (s *RosterService) SubmitRoster(ctx context.Context, organizer *models.Account, sessionID string, entries []RosterEntry) (*RosterResult, error) {
	if err := CanPerform(organizer, ActionEditRoster, nil).Err(nil); err != nil {
		return nil, err
	}

	session, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &RosterResult{SessionID: session.ID, Outcomes: make([]EntryOutcome, 0, len(entries))}
	for i, entry := range entries {
		outcome := s.resolve(ctx, session, entry)
		outcome.Index = i
		outcome.Entry = entry

		switch outcome.Status {
		case EntryMatched:
			result.Matched++
		case EntryProvisioned:
			result.Provisioned++
		default:
			result.Failed++
			log.Printf("⚠️ [ROSTER] entry %d (%s %s) for session %s failed: %s",
				i, entry.FirstName, entry.LastName, session.ID, outcome.Error)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	// Newly attached participants must show up in cached rankings.
	if result.Matched+result.Provisioned > 0 && s.Cache != nil {
		if err := s.Cache.InvalidateSession(ctx, session.ID); err != nil {
			log.Printf("⚠️ [ROSTER] ranking cache invalidation for session %s failed: %v", session.ID, err)
		}
	}

	log.Printf("📋 [ROSTER] session %s: %d matched, %d provisioned, %d failed (by %s)",
		session.ID, result.Matched, result.Provisioned, result.Failed, organizer.ID)
	return result, nil
}

func (s *RosterService) resolve(ctx context.Context, session *models.Session, entry RosterEntry) EntryOutcome {
	if err := Validate(entry); err != nil {
		return failed(err)
	}

	candidates, err := s.Matcher.Match(ctx, entry)
	if err != nil {
		return failed(fmt.Errorf("match identity: %w", err))
	}

	var (
		participant *models.ParticipantRecord
		created     bool
		outcome     EntryOutcome
	)
	if len(candidates) > 0 {
		account := candidates[0]
		participant, created, err = s.participantForAccount(ctx, &account, entry)
		outcome = EntryOutcome{
			Status:     EntryMatched,
			Matched:    true,
			AccountID:  account.ID,
			Ambiguous:  len(candidates) > 1,
			Candidates: len(candidates),
		}
	} else {
		participant, created, err = s.provisionalParticipant(ctx, session, entry)
		outcome = EntryOutcome{Status: EntryProvisioned}
	}
	if err != nil {
		return failed(err)
	}

	if err := s.Roster.AttachParticipantToSession(ctx, session.ID, participant.ID); err != nil {
		return failed(fmt.Errorf("attach participant: %w", err))
	}

	outcome.ParticipantID = participant.ID
	outcome.Created = created
	return outcome
}

// participantForAccount returns the record linked to account, creating it on
// the account's first competition. The link holds even if the account is
// renamed later.
func (s *RosterService) participantForAccount(ctx context.Context, account *models.Account, entry RosterEntry) (*models.ParticipantRecord, bool, error) {
	existing, err := s.Roster.GetParticipantsByAccount(ctx, account.ID)
	if err != nil {
		return nil, false, fmt.Errorf("lookup participant: %w", err)
	}
	if p := pickOldest(existing, func(*models.ParticipantRecord) bool { return true }); p != nil {
		return p, false, nil
	}

	club := entry.ClubName
	if club == "" {
		club = account.ClubAffiliation
	}
	accountID := account.ID
	p := &models.ParticipantRecord{
		ID:        uuid.NewString(),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		ClubName:  club,
		Level:     entry.Level,
		AccountID: &accountID,
		Approved:  account.Approved,
	}
	if err := s.Roster.CreateParticipant(ctx, p); err != nil {
		return nil, false, fmt.Errorf("create participant: %w", err)
	}
	return p, true, nil
}

// provisionalParticipant returns an unlinked record scoped to the session's
// competition. A record with the same names and club already provisioned in
// that competition is reused.
func (s *RosterService) provisionalParticipant(ctx context.Context, session *models.Session, entry RosterEntry) (*models.ParticipantRecord, bool, error) {
	existing, err := s.Roster.GetParticipantsByName(ctx, entry.FirstName, entry.LastName)
	if err != nil {
		return nil, false, fmt.Errorf("lookup participant: %w", err)
	}
	if p := pickOldest(existing, func(p *models.ParticipantRecord) bool {
		return p.Provisional() &&
			p.FirstName == entry.FirstName && p.LastName == entry.LastName &&
			p.CompetitionID != nil && *p.CompetitionID == session.CompetitionID &&
			p.ClubName == entry.ClubName
	}); p != nil {
		return p, false, nil
	}

	competitionID := session.CompetitionID
	p := &models.ParticipantRecord{
		ID:            uuid.NewString(),
		FirstName:     entry.FirstName,
		LastName:      entry.LastName,
		ClubName:      entry.ClubName,
		Level:         entry.Level,
		CompetitionID: &competitionID,
		Approved:      true,
	}
	if err := s.Roster.CreateParticipant(ctx, p); err != nil {
		return nil, false, fmt.Errorf("create provisional participant: %w", err)
	}
	return p, true, nil
}

func pickOldest(records []models.ParticipantRecord, keep func(*models.ParticipantRecord) bool) *models.ParticipantRecord {
	var best *models.ParticipantRecord
	for i := range records {
		p := &records[i]
		if !keep(p) {
			continue
		}
		if best == nil || p.CreatedAt.Before(best.CreatedAt) ||
			(p.CreatedAt.Equal(best.CreatedAt) && p.ID < best.ID) {
			best = p
		}
	}
	return best
}

func failed(err error) EntryOutcome {
	return EntryOutcome{Status: EntryFailed, Error: err.Error()}
}

// SessionRoster lists the participants attached to a session.
func (s *RosterService) SessionRoster(ctx context.Context, viewer *models.Account, sessionID string) ([]models.ParticipantRecord, error) {
	if err := CanPerform(viewer, ActionViewResults, nil).Err(nil); err != nil {
		return nil, err
	}
	if _, err := s.Sessions.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	roster, err := s.Roster.GetSessionParticipants(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return roster, nil
}
