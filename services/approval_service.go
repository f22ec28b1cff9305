package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"

	"github.com/google/uuid"
)

// ApprovalStore is what the approval workflow needs from persistence.
type ApprovalStore interface {
	AccountStore
	RejectionLog
}

// ApprovalService moves accounts out of PendingApproval. Approval is
// terminal; rejection deletes the account.
type ApprovalService struct {
	Store ApprovalStore
	Now   Clock
}

func NewApprovalService(store ApprovalStore) *ApprovalService {
	return &ApprovalService{Store: store, Now: time.Now}
}

// ApprovalResult reports the outcome of a successful Approve.
type ApprovalResult struct {
	Account         *models.Account `json:"account"`
	AlreadyApproved bool            `json:"alreadyApproved"`
}

// Approve marks the account approved. Approving an approved account is a
// no-op that still succeeds.
func (s *ApprovalService) Approve(ctx context.Context, approver *models.Account, accountID string) (*ApprovalResult, error) {
	account, err := s.Store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := CanPerform(approver, ActionApproveAccount, account).Err(account); err != nil {
		log.Printf("🚫 [APPROVAL] %s denied approving %s (%s): %v", actorID(approver), account.ID, account.Role, err)
		return nil, err
	}

	if account.Approved {
		return &ApprovalResult{Account: account, AlreadyApproved: true}, nil
	}

	account.Approved = true
	if err := s.Store.UpsertAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("approve account %s: %w", account.ID, err)
	}

	log.Printf("✅ [APPROVAL] %s approved %s account %s", actorID(approver), account.Role, account.ID)
	return &ApprovalResult{Account: account}, nil
}

// Reject deletes the account. The deletion is irreversible; a snapshot is
// appended to the rejection log. Rejecting an account that no longer exists
// returns NotFound.
func (s *ApprovalService) Reject(ctx context.Context, approver *models.Account, accountID string) error {
	account, err := s.Store.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if err := CanPerform(approver, ActionApproveAccount, account).Err(account); err != nil {
		log.Printf("🚫 [APPROVAL] %s denied rejecting %s (%s): %v", actorID(approver), account.ID, account.Role, err)
		return err
	}

	if err := s.Store.DeleteAccount(ctx, account.ID); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("reject account %s: %w", account.ID, err)
	}

	record := &models.RejectionRecord{
		ID:              uuid.NewString(),
		AccountID:       account.ID,
		Role:            account.Role,
		Email:           account.Email,
		FirstName:       account.FirstName,
		LastName:        account.LastName,
		ClubName:        account.ClubName,
		ClubAffiliation: account.ClubAffiliation,
		RejectedBy:      approver.ID,
		RejectedAt:      s.Now(),
	}
	if err := s.Store.RecordRejection(ctx, record); err != nil {
		// The account is already gone; losing the snapshot must not turn the
		// rejection into a failure.
		log.Printf("⚠️ [APPROVAL] failed to record rejection of %s: %v", account.ID, err)
	}

	log.Printf("🗑️ [APPROVAL] %s rejected and removed %s account %s", approver.ID, account.Role, account.ID)
	return nil
}

// ListPending returns the pending accounts approver is allowed to act on,
// oldest first.
func (s *ApprovalService) ListPending(ctx context.Context, approver *models.Account) ([]models.Account, error) {
	if approver == nil {
		return nil, CanPerform(nil, ActionApproveAccount, nil).Err(nil)
	}

	var pending []models.Account
	for _, role := range models.Roles {
		accounts, err := s.Store.GetAccountsByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("list %s accounts: %w", role, err)
		}
		for i := range accounts {
			acc := accounts[i]
			if acc.Approved {
				continue
			}
			if CanPerform(approver, ActionApproveAccount, &acc).Allowed {
				pending = append(pending, acc)
			}
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].ID < pending[j].ID
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func actorID(a *models.Account) string {
	if a == nil {
		return "anonymous"
	}
	return a.ID
}
