// Package repository is the gorm-backed persistence layer.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
	"gym-scoring-system/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements services.Store on top of gorm.
type Store struct {
	DB *gorm.DB
}

var _ services.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Migrate creates or updates every table the store uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.RejectionRecord{},
		&models.Competition{},
		&models.Session{},
		&models.ParticipantRecord{},
		&models.SessionParticipant{},
		&models.ScoreEntry{},
	)
}

func notFound(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound(entity, id)
	}
	return err
}

// --- Accounts ---

func (s *Store) GetAccountsByRole(ctx context.Context, role models.Role) ([]models.Account, error) {
	var accounts []models.Account
	err := s.DB.WithContext(ctx).
		Where("role = ?", role).
		Order("id ASC").
		Find(&accounts).Error
	return accounts, err
}

func (s *Store) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := s.DB.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "account", id)
	}
	return &account, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := s.DB.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		return nil, notFound(err, "account", email)
	}
	return &account, nil
}

func (s *Store) UpsertAccount(ctx context.Context, account *models.Account) error {
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(account).Error
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("account", id)
	}
	return nil
}

// --- Rejection log ---

func (s *Store) RecordRejection(ctx context.Context, record *models.RejectionRecord) error {
	return s.DB.WithContext(ctx).Create(record).Error
}

func (s *Store) PruneRejections(ctx context.Context, before time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("rejected_at < ?", before).
		Delete(&models.RejectionRecord{})
	return res.RowsAffected, res.Error
}

// --- Competitions & sessions ---

func (s *Store) CreateCompetition(ctx context.Context, c *models.Competition) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *Store) GetCompetition(ctx context.Context, id string) (*models.Competition, error) {
	var c models.Competition
	if err := s.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "competition", id)
	}
	return &c, nil
}

func (s *Store) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	var out []models.Competition
	err := s.DB.WithContext(ctx).Order("start_date ASC, id ASC").Find(&out).Error
	return out, err
}

func (s *Store) SetCompetitionStatusOverride(ctx context.Context, id string, override *models.Status) error {
	return s.setStatusOverride(ctx, &models.Competition{}, "competition", id, override)
}

func (s *Store) SetSessionStatusOverride(ctx context.Context, id string, override *models.Status) error {
	return s.setStatusOverride(ctx, &models.Session{}, "session", id, override)
}

// setStatusOverride writes status_override on model's row, NULL when override
// is nil.
func (s *Store) setStatusOverride(ctx context.Context, model any, resource, id string, override *models.Status) error {
	var value any = gorm.Expr("NULL")
	if override != nil {
		value = string(*override)
	}
	res := s.DB.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Update("status_override", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound(resource, id)
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, sess *models.Session) error {
	return s.DB.WithContext(ctx).Create(sess).Error
}

func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	if err := s.DB.WithContext(ctx).First(&sess, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "session", id)
	}
	return &sess, nil
}

func (s *Store) ListSessions(ctx context.Context, competitionID string) ([]models.Session, error) {
	var out []models.Session
	err := s.DB.WithContext(ctx).
		Where("competition_id = ?", competitionID).
		Order("starts_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// --- Roster ---

func (s *Store) GetParticipantsByName(ctx context.Context, firstName, lastName string) ([]models.ParticipantRecord, error) {
	var out []models.ParticipantRecord
	err := s.DB.WithContext(ctx).
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) GetParticipantsByAccount(ctx context.Context, accountID string) ([]models.ParticipantRecord, error) {
	var out []models.ParticipantRecord
	err := s.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) GetParticipant(ctx context.Context, id string) (*models.ParticipantRecord, error) {
	var p models.ParticipantRecord
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "participant", id)
	}
	return &p, nil
}

func (s *Store) CreateParticipant(ctx context.Context, p *models.ParticipantRecord) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

// AttachParticipantToSession is idempotent.
func (s *Store) AttachParticipantToSession(ctx context.Context, sessionID, participantID string) error {
	link := models.SessionParticipant{SessionID: sessionID, ParticipantID: participantID}
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error; err != nil {
		return fmt.Errorf("attach %s to %s: %w", participantID, sessionID, err)
	}
	return nil
}

func (s *Store) GetSessionParticipants(ctx context.Context, sessionID string) ([]models.ParticipantRecord, error) {
	var out []models.ParticipantRecord
	err := s.DB.WithContext(ctx).
		Joins("JOIN session_participants sp ON sp.participant_id = participant_records.id").
		Where("sp.session_id = ?", sessionID).
		Order("sp.created_at ASC, participant_records.id ASC").
		Find(&out).Error
	return out, err
}

// --- Scores ---

func (s *Store) GetScoresForSession(ctx context.Context, sessionID string) ([]models.ScoreEntry, error) {
	var out []models.ScoreEntry
	err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) GetScoresForParticipant(ctx context.Context, participantID string) ([]models.ScoreEntry, error) {
	var out []models.ScoreEntry
	err := s.DB.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) CreateScore(ctx context.Context, score *models.ScoreEntry) error {
	return s.DB.WithContext(ctx).Create(score).Error
}
