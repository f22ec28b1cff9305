package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScoreInput is a judge's submission for one routine. Difficulty and
// execution must be present; deductions default to zero.
type ScoreInput struct {
	ParticipantID string           `json:"participantId" validate:"required"`
	Apparatus     string           `json:"apparatus" validate:"required"`
	Difficulty    *decimal.Decimal `json:"difficulty"`
	Execution     *decimal.Decimal `json:"execution"`
	Deductions    decimal.Decimal  `json:"deductions"`
}

// ScoreService records score submissions.
type ScoreService struct {
	Sessions CompetitionStore
	Roster   RosterStore
	Scores   ScoreStore
	Cache    RankingCache
	Now      Clock
}

func NewScoreService(store Store, cache RankingCache) *ScoreService {
	return &ScoreService{
		Sessions: store,
		Roster:   store,
		Scores:   store,
		Cache:    cache,
		Now:      time.Now,
	}
}

// SubmitScore validates and stores a new score entry. Earlier entries for the
// same routine are kept as history; the new one becomes authoritative.
func (s *ScoreService) SubmitScore(ctx context.Context, judge *models.Account, sessionID string, in ScoreInput) (*models.ScoreEntry, error) {
	if err := CanPerform(judge, ActionSubmitScore, nil).Err(nil); err != nil {
		return nil, err
	}
	if err := Validate(in); err != nil {
		return nil, err
	}

	if in.Difficulty == nil {
		return nil, apperrors.NewValidation("difficulty", "is required")
	}
	if in.Execution == nil {
		return nil, apperrors.NewValidation("execution", "is required")
	}

	apparatus, ok := models.ParseApparatus(in.Apparatus)
	if !ok {
		return nil, apperrors.NewValidation("apparatus", "must be one of: floor vault bars beam")
	}

	final, err := Compute(*in.Difficulty, *in.Execution, in.Deductions)
	if err != nil {
		return nil, err
	}

	session, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Roster.GetParticipant(ctx, in.ParticipantID); err != nil {
		return nil, err
	}
	attached, err := s.isAttached(ctx, session.ID, in.ParticipantID)
	if err != nil {
		return nil, err
	}
	if !attached {
		return nil, apperrors.NewValidation("participantId", "is not on the session roster")
	}

	entry := &models.ScoreEntry{
		ID:            uuid.NewString(),
		SessionID:     session.ID,
		CompetitionID: session.CompetitionID,
		ParticipantID: in.ParticipantID,
		Apparatus:     apparatus,
		JudgeID:       judge.ID,
		Difficulty:    *in.Difficulty,
		Execution:     *in.Execution,
		Deductions:    in.Deductions,
		Final:         final,
		CreatedAt:     s.Now(),
	}
	if err := s.Scores.CreateScore(ctx, entry); err != nil {
		return nil, fmt.Errorf("create score: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.InvalidateSession(ctx, session.ID); err != nil {
			log.Printf("⚠️ [SCORES] ranking cache invalidation for session %s failed: %v", session.ID, err)
		}
	}

	log.Printf("🏅 [SCORES] %s scored %s on %s in session %s: %s",
		judge.ID, entry.ParticipantID, entry.Apparatus, session.ID, FormatScore(final))
	return entry, nil
}

func (s *ScoreService) isAttached(ctx context.Context, sessionID, participantID string) (bool, error) {
	roster, err := s.Roster.GetSessionParticipants(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("load roster: %w", err)
	}
	for _, p := range roster {
		if p.ID == participantID {
			return true, nil
		}
	}
	return false, nil
}
