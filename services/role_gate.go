package services

import (
	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
)

// Action is something an account may try to do.
type Action string

const (
	ActionCreateCompetition Action = "create-competition"
	ActionEditRoster        Action = "edit-roster"
	ActionSubmitScore       Action = "submit-score"
	ActionApproveAccount    Action = "approve-account"
	ActionViewResults       Action = "view-results"
)

// DenyReason explains a refused action.
type DenyReason string

const (
	ReasonNone             DenyReason = ""
	ReasonInsufficientRole DenyReason = "insufficient-role"
	ReasonNotApproved      DenyReason = "not-approved"
	ReasonClubMismatch     DenyReason = "club-mismatch"
	ReasonUnauthenticated  DenyReason = "unauthenticated"
)

// Decision is the outcome of a permission check. A denial always carries a
// reason.
type Decision struct {
	Allowed bool
	Action  Action
	Reason  DenyReason
}

func allow(action Action) Decision { return Decision{Allowed: true, Action: action} }

func deny(action Action, reason DenyReason) Decision {
	return Decision{Action: action, Reason: reason}
}

// Err converts a denial into a typed error. Allowed decisions return nil.
// A club mismatch reports the club the gymnast is affiliated with.
func (d Decision) Err(target *models.Account) error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonClubMismatch && target != nil {
		return &apperrors.ApprovalMismatch{ExpectedClub: target.ClubAffiliation}
	}
	return &apperrors.PermissionDenied{Reason: string(d.Reason), Action: string(d.Action)}
}

// CanPerform decides whether actor may perform action. target is the account
// being approved or rejected and is ignored for every other action.
//
// The table is fixed:
//
//	create competition/session  club, admin
//	submit/edit roster          club, admin
//	submit/edit score           judge (approved), admin
//	approve non-gymnast         admin
//	approve gymnast             club whose clubName equals the gymnast's clubAffiliation
//	view results                any authenticated role
func CanPerform(actor *models.Account, action Action, target *models.Account) Decision {
	if actor == nil {
		return deny(action, ReasonUnauthenticated)
	}

	switch action {
	case ActionCreateCompetition, ActionEditRoster:
		if actor.Role == models.RoleClub || actor.Role == models.RoleAdmin {
			return allow(action)
		}
		return deny(action, ReasonInsufficientRole)

	case ActionSubmitScore:
		switch actor.Role {
		case models.RoleAdmin:
			return allow(action)
		case models.RoleJudge:
			if !actor.Approved {
				return deny(action, ReasonNotApproved)
			}
			return allow(action)
		}
		return deny(action, ReasonInsufficientRole)

	case ActionApproveAccount:
		if target != nil && target.Role == models.RoleGymnast {
			if actor.Role != models.RoleClub {
				return deny(action, ReasonInsufficientRole)
			}
			if actor.ClubName != target.ClubAffiliation {
				return deny(action, ReasonClubMismatch)
			}
			return allow(action)
		}
		if actor.Role == models.RoleAdmin {
			return allow(action)
		}
		return deny(action, ReasonInsufficientRole)

	case ActionViewResults:
		if actor.Role.Valid() {
			return allow(action)
		}
		return deny(action, ReasonInsufficientRole)
	}

	return deny(action, ReasonInsufficientRole)
}
