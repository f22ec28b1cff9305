package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScoreEntry is one judge submission for a gymnast on an apparatus.
// Resubmissions add rows; the newest row per (session, participant,
// apparatus) is authoritative.
type ScoreEntry struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	SessionID     string          `json:"sessionId" gorm:"index:idx_score_tuple;not null"`
	CompetitionID string          `json:"competitionId" gorm:"index;not null"`
	ParticipantID string          `json:"participantId" gorm:"index:idx_score_tuple;index;not null"`
	Apparatus     Apparatus       `json:"apparatus" gorm:"type:varchar(16);index:idx_score_tuple;not null"`
	JudgeID       string          `json:"judgeId" gorm:"index;not null"`
	Difficulty    decimal.Decimal `json:"difficulty" gorm:"type:numeric;not null"`
	Execution     decimal.Decimal `json:"execution" gorm:"type:numeric;not null"`
	Deductions    decimal.Decimal `json:"deductions" gorm:"type:numeric;not null"`
	Final         decimal.Decimal `json:"final" gorm:"type:numeric;not null"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"index;not null"`
}
