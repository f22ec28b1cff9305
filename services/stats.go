package services

import (
	"sort"
	"time"

	"gym-scoring-system/models"

	"github.com/shopspring/decimal"
)

// RecentScoresLimit caps ParticipantStats.RecentScores.
const RecentScoresLimit = 5

// ApparatusStats summarizes one apparatus. Zero and unscored entries are
// excluded from every figure.
type ApparatusStats struct {
	Apparatus models.Apparatus `json:"apparatus"`
	Count     int              `json:"count"`
	Average   string           `json:"average"`
	Best      string           `json:"best"`

	AverageExact decimal.Decimal `json:"averageExact"`
	BestExact    decimal.Decimal `json:"bestExact"`
}

// RecentScore is one entry of a participant's recent history.
type RecentScore struct {
	ScoreID       string           `json:"scoreId"`
	SessionID     string           `json:"sessionId"`
	CompetitionID string           `json:"competitionId"`
	Apparatus     models.Apparatus `json:"apparatus"`
	Final         string           `json:"final"`
	SubmittedAt   time.Time        `json:"submittedAt"`
}

// ParticipantStats is the historical summary of a participant. HasHistory is
// false when the participant has no positive authoritative score; all other
// fields are then zero.
type ParticipantStats struct {
	ParticipantID      string           `json:"participantId"`
	HasHistory         bool             `json:"hasHistory"`
	TotalCompetitions  int              `json:"totalCompetitions"`
	BestScore          string           `json:"bestScore"`
	AverageScore       string           `json:"averageScore"`
	ApparatusBreakdown []ApparatusStats `json:"apparatusBreakdown"`
	RecentScores       []RecentScore    `json:"recentScores"`

	BestScoreExact    decimal.Decimal `json:"bestScoreExact"`
	AverageScoreExact decimal.Decimal `json:"averageScoreExact"`
}

// Aggregate reduces a participant's score history. Only authoritative
// entries with a final above zero count.
func Aggregate(participantID string, allScores []models.ScoreEntry) ParticipantStats {
	var own []models.ScoreEntry
	for _, s := range allScores {
		if s.ParticipantID == participantID {
			own = append(own, s)
		}
	}

	var positive []models.ScoreEntry
	for _, s := range AuthoritativeScores(own) {
		if s.Final.IsPositive() {
			positive = append(positive, s)
		}
	}

	stats := ParticipantStats{
		ParticipantID:      participantID,
		BestScore:          FormatScore(decimal.Zero),
		AverageScore:       FormatScore(decimal.Zero),
		ApparatusBreakdown: []ApparatusStats{},
		RecentScores:       []RecentScore{},
	}
	if len(positive) == 0 {
		return stats
	}

	competitions := make(map[string]bool)
	sum := decimal.Zero
	best := decimal.Zero
	type acc struct {
		count int
		sum   decimal.Decimal
		best  decimal.Decimal
	}
	perApparatus := make(map[models.Apparatus]*acc)

	for _, s := range positive {
		competitions[s.CompetitionID] = true
		sum = sum.Add(s.Final)
		if s.Final.GreaterThan(best) {
			best = s.Final
		}
		a, ok := perApparatus[s.Apparatus]
		if !ok {
			a = &acc{sum: decimal.Zero, best: decimal.Zero}
			perApparatus[s.Apparatus] = a
		}
		a.count++
		a.sum = a.sum.Add(s.Final)
		if s.Final.GreaterThan(a.best) {
			a.best = s.Final
		}
	}

	avg := sum.Div(decimal.NewFromInt(int64(len(positive))))
	stats.HasHistory = true
	stats.TotalCompetitions = len(competitions)
	stats.BestScoreExact = best
	stats.AverageScoreExact = avg
	stats.BestScore = FormatScore(best)
	stats.AverageScore = FormatScore(avg)

	for _, info := range models.ApparatusCatalog {
		a, ok := perApparatus[info.Code]
		if !ok {
			continue
		}
		apAvg := a.sum.Div(decimal.NewFromInt(int64(a.count)))
		stats.ApparatusBreakdown = append(stats.ApparatusBreakdown, ApparatusStats{
			Apparatus:    info.Code,
			Count:        a.count,
			Average:      FormatScore(apAvg),
			Best:         FormatScore(a.best),
			AverageExact: apAvg,
			BestExact:    a.best,
		})
	}

	sort.SliceStable(positive, func(i, j int) bool {
		if positive[i].CreatedAt.Equal(positive[j].CreatedAt) {
			return positive[i].ID > positive[j].ID
		}
		return positive[i].CreatedAt.After(positive[j].CreatedAt)
	})
	for i, s := range positive {
		if i == RecentScoresLimit {
			break
		}
		stats.RecentScores = append(stats.RecentScores, RecentScore{
			ScoreID:       s.ID,
			SessionID:     s.SessionID,
			CompetitionID: s.CompetitionID,
			Apparatus:     s.Apparatus,
			Final:         FormatScore(s.Final),
			SubmittedAt:   s.CreatedAt,
		})
	}

	return stats
}
