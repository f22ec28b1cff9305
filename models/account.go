package models

import "time"

// Role identifies what an account is allowed to do.
type Role string

const (
	RoleObserver Role = "observer"
	RoleJudge    Role = "judge"
	RoleClub     Role = "club"
	RoleAdmin    Role = "admin"
	RoleGymnast  Role = "gymnast"
)

// Roles lists every known role.
var Roles = []Role{RoleObserver, RoleJudge, RoleClub, RoleAdmin, RoleGymnast}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Account is a registered identity. Observers are approved at creation; every
// other role starts pending and is either approved once or deleted.
type Account struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	FirstName string `json:"firstName" gorm:"index"`
	LastName  string `json:"lastName" gorm:"index"`
	Role      Role   `json:"role" gorm:"type:varchar(16);index;not null"`
	Approved  bool   `json:"approved"`

	// Judge profile
	JudgeID     string `json:"judgeId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	// Club profile
	ClubName     string `json:"clubName,omitempty" gorm:"index"`
	ClubUsername string `json:"clubUsername,omitempty"`
	Location     string `json:"location,omitempty"`

	// Gymnast profile
	ClubAffiliation string `json:"clubAffiliation,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// FullName joins first and last name.
func (a *Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	if a.FirstName == "" {
		return a.LastName
	}
	return a.FirstName + " " + a.LastName
}

// RejectionRecord keeps a snapshot of an account removed by a rejection.
// The account row itself is deleted; this is the only trace left behind.
type RejectionRecord struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	AccountID       string    `json:"accountId" gorm:"index;not null"`
	Role            Role      `json:"role" gorm:"type:varchar(16)"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ClubName        string    `json:"clubName,omitempty"`
	ClubAffiliation string    `json:"clubAffiliation,omitempty"`
	RejectedBy      string    `json:"rejectedBy" gorm:"not null"`
	RejectedAt      time.Time `json:"rejectedAt" gorm:"index;not null"`
}
