package models

import "time"

// Competition is an event spanning one or more days.
type Competition struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Slug           string    `json:"slug" gorm:"index"`
	Venue          string    `json:"venue"`
	StartDate      time.Time `json:"startDate" gorm:"not null"`
	EndDate        time.Time `json:"endDate"`
	StatusOverride *Status   `json:"statusOverride,omitempty" gorm:"type:varchar(16)"`
	CreatedBy      string    `json:"createdBy" gorm:"index"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Derived at read time, never stored
	Status Status `json:"status" gorm:"-"`
}

// ResolveStatus fills Status from the date range as of now.
func (c *Competition) ResolveStatus(now time.Time) *Competition {
	c.Status = DeriveDateStatus(c.StartDate, c.EndDate, now, c.StatusOverride)
	return c
}

// Session is a timed flight of a competition.
type Session struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	CompetitionID  string    `json:"competitionId" gorm:"index;not null"`
	Name           string    `json:"name" gorm:"not null"`
	StartsAt       time.Time `json:"startsAt" gorm:"not null"`
	EndsAt         time.Time `json:"endsAt"`
	StatusOverride *Status   `json:"statusOverride,omitempty" gorm:"type:varchar(16)"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Status Status `json:"status" gorm:"-"`
}

// ResolveStatus fills Status from the time window as of now.
func (s *Session) ResolveStatus(now time.Time) *Session {
	s.Status = DeriveWindowStatus(s.StartsAt, s.EndsAt, now, s.StatusOverride)
	return s
}
