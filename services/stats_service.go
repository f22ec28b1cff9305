package services

import (
	"context"
	"fmt"

	"gym-scoring-system/models"
)

// StatsService serves participant history summaries.
type StatsService struct {
	Roster RosterStore
	Scores ScoreStore
}

func NewStatsService(store Store) *StatsService {
	return &StatsService{Roster: store, Scores: store}
}

// ParticipantStats aggregates every score the participant ever received.
func (s *StatsService) ParticipantStats(ctx context.Context, viewer *models.Account, participantID string) (*ParticipantStats, error) {
	if err := CanPerform(viewer, ActionViewResults, nil).Err(nil); err != nil {
		return nil, err
	}
	participant, err := s.Roster.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	scores, err := s.Scores.GetScoresForParticipant(ctx, participant.ID)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	stats := Aggregate(participant.ID, scores)
	return &stats, nil
}
