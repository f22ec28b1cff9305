package models

import "time"

// ParticipantRecord is a roster entry for a gymnast. AccountID is a weak
// reference: the record outlives any change to the linked account. Records
// without an account are provisional and scoped to CompetitionID.
type ParticipantRecord struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	FirstName     string    `json:"firstName" gorm:"index:idx_participant_name;not null"`
	LastName      string    `json:"lastName" gorm:"index:idx_participant_name;not null"`
	ClubName      string    `json:"clubName"`
	Level         string    `json:"level"`
	AccountID     *string   `json:"accountId,omitempty" gorm:"index"`
	CompetitionID *string   `json:"competitionId,omitempty" gorm:"index"`
	Approved      bool      `json:"approved"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Provisional reports whether the record has no linked account.
func (p *ParticipantRecord) Provisional() bool {
	return p.AccountID == nil || *p.AccountID == ""
}

// FullName joins first and last name.
func (p *ParticipantRecord) FullName() string {
	return p.FirstName + " " + p.LastName
}

// SessionParticipant attaches a roster entry to a session.
type SessionParticipant struct {
	SessionID     string    `json:"sessionId" gorm:"primaryKey"`
	ParticipantID string    `json:"participantId" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
