package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
)

// AllAroundKey names the all-around ranking in cache keys.
const AllAroundKey = "all-around"

// RankingCache stores computed rankings between score submissions.
type RankingCache interface {
	GetRanking(ctx context.Context, key string) ([]RankedParticipant, bool, error)
	SetRanking(ctx context.Context, key string, rows []RankedParticipant) error
	InvalidateSession(ctx context.Context, sessionID string) error
}

// RankingKey is the cache key of a session ranking.
func RankingKey(sessionID, event string) string {
	return fmt.Sprintf("ranking:%s:%s", sessionID, event)
}

// SessionRanking is a ranking together with the session it belongs to.
type SessionRanking struct {
	Session   *models.Session     `json:"session"`
	Apparatus string              `json:"apparatus"`
	Rows      []RankedParticipant `json:"rows"`
}

// RankingService serves per-session rankings.
type RankingService struct {
	Sessions CompetitionStore
	Roster   RosterStore
	Scores   ScoreStore
	Cache    RankingCache
	Now      Clock
}

func NewRankingService(store Store, cache RankingCache) *RankingService {
	return &RankingService{
		Sessions: store,
		Roster:   store,
		Scores:   store,
		Cache:    cache,
		Now:      time.Now,
	}
}

// ApparatusRanking ranks a session on one apparatus.
func (s *RankingService) ApparatusRanking(ctx context.Context, viewer *models.Account, sessionID, apparatus string) (*SessionRanking, error) {
	code, ok := models.ParseApparatus(apparatus)
	if !ok {
		return nil, apperrors.NewValidation("apparatus", "must be one of: floor vault bars beam")
	}
	return s.ranking(ctx, viewer, sessionID, string(code), func(roster []models.ParticipantRecord, scores []models.ScoreEntry) []RankedParticipant {
		return Rank(roster, scores, code)
	})
}

// AllAroundRanking ranks a session on the sum of all apparatus.
func (s *RankingService) AllAroundRanking(ctx context.Context, viewer *models.Account, sessionID string) (*SessionRanking, error) {
	return s.ranking(ctx, viewer, sessionID, AllAroundKey, RankAllAround)
}

func (s *RankingService) ranking(ctx context.Context, viewer *models.Account, sessionID, event string,
	rank func([]models.ParticipantRecord, []models.ScoreEntry) []RankedParticipant) (*SessionRanking, error) {
	if err := CanPerform(viewer, ActionViewResults, nil).Err(nil); err != nil {
		return nil, err
	}

	session, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.ResolveStatus(s.Now())

	key := RankingKey(session.ID, event)
	if s.Cache != nil {
		rows, hit, err := s.Cache.GetRanking(ctx, key)
		if err != nil {
			log.Printf("⚠️ [RANKING] cache read %s failed: %v", key, err)
		} else if hit {
			return &SessionRanking{Session: session, Apparatus: event, Rows: rows}, nil
		}
	}

	roster, err := s.Roster.GetSessionParticipants(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	scores, err := s.Scores.GetScoresForSession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}

	rows := rank(roster, scores)
	if s.Cache != nil {
		if err := s.Cache.SetRanking(ctx, key, rows); err != nil {
			log.Printf("⚠️ [RANKING] cache write %s failed: %v", key, err)
		}
	}
	return &SessionRanking{Session: session, Apparatus: event, Rows: rows}, nil
}
