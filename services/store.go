package services

import (
	"context"
	"time"

	"gym-scoring-system/models"
)

// AccountStore is the account side of the persistence collaborator.
// Lookups of missing rows return apperrors.NotFound.
type AccountStore interface {
	GetAccountsByRole(ctx context.Context, role models.Role) ([]models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	UpsertAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id string) error
}

// RejectionLog retains snapshots of rejected accounts.
type RejectionLog interface {
	RecordRejection(ctx context.Context, record *models.RejectionRecord) error
	PruneRejections(ctx context.Context, before time.Time) (int64, error)
}

// CompetitionStore persists competitions and their sessions.
type CompetitionStore interface {
	CreateCompetition(ctx context.Context, c *models.Competition) error
	GetCompetition(ctx context.Context, id string) (*models.Competition, error)
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
	SetCompetitionStatusOverride(ctx context.Context, id string, override *models.Status) error
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	SetSessionStatusOverride(ctx context.Context, id string, override *models.Status) error
	ListSessions(ctx context.Context, competitionID string) ([]models.Session, error)
}

// RosterStore persists participant records and session attachments.
type RosterStore interface {
	GetParticipantsByName(ctx context.Context, firstName, lastName string) ([]models.ParticipantRecord, error)
	GetParticipantsByAccount(ctx context.Context, accountID string) ([]models.ParticipantRecord, error)
	GetParticipant(ctx context.Context, id string) (*models.ParticipantRecord, error)
	CreateParticipant(ctx context.Context, p *models.ParticipantRecord) error
	AttachParticipantToSession(ctx context.Context, sessionID, participantID string) error
	GetSessionParticipants(ctx context.Context, sessionID string) ([]models.ParticipantRecord, error)
}

// ScoreStore persists score entries. Entries are append-only.
type ScoreStore interface {
	GetScoresForSession(ctx context.Context, sessionID string) ([]models.ScoreEntry, error)
	GetScoresForParticipant(ctx context.Context, participantID string) ([]models.ScoreEntry, error)
	CreateScore(ctx context.Context, score *models.ScoreEntry) error
}

// Store is the full persistence collaborator.
type Store interface {
	AccountStore
	RejectionLog
	CompetitionStore
	RosterStore
	ScoreStore
}

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time
