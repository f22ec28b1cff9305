package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"

	"github.com/google/uuid"
)

// Identity holds the fields every registration carries.
type Identity struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// Registration is one role-shaped registration payload. Each variant carries
// exactly the profile fields its role requires.
type Registration interface {
	Role() models.Role
	identity() Identity
	apply(a *models.Account)
}

type ObserverRegistration struct {
	Identity
}

func (ObserverRegistration) Role() models.Role       { return models.RoleObserver }
func (r ObserverRegistration) identity() Identity    { return r.Identity }
func (ObserverRegistration) apply(a *models.Account) {}

type JudgeRegistration struct {
	Identity
	JudgeID     string `json:"judgeId" validate:"required,max=64"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
}

func (JudgeRegistration) Role() models.Role    { return models.RoleJudge }
func (r JudgeRegistration) identity() Identity { return r.Identity }
func (r JudgeRegistration) apply(a *models.Account) {
	a.JudgeID = r.JudgeID
	a.DisplayName = r.DisplayName
}

type ClubRegistration struct {
	Identity
	ClubName     string `json:"clubName" validate:"required,max=150"`
	ClubUsername string `json:"clubUsername" validate:"required,max=64"`
	Location     string `json:"location" validate:"required,max=150"`
}

func (ClubRegistration) Role() models.Role    { return models.RoleClub }
func (r ClubRegistration) identity() Identity { return r.Identity }
func (r ClubRegistration) apply(a *models.Account) {
	a.ClubName = r.ClubName
	a.ClubUsername = r.ClubUsername
	a.Location = r.Location
}

type GymnastRegistration struct {
	Identity
	ClubAffiliation string `json:"clubAffiliation" validate:"required,max=150"`
}

func (GymnastRegistration) Role() models.Role    { return models.RoleGymnast }
func (r GymnastRegistration) identity() Identity { return r.Identity }
func (r GymnastRegistration) apply(a *models.Account) {
	a.ClubAffiliation = r.ClubAffiliation
}

// RegistrationService creates accounts.
type RegistrationService struct {
	Store AccountStore
}

func NewRegistrationService(store AccountStore) *RegistrationService {
	return &RegistrationService{Store: store}
}

// Register validates the payload and creates the account. Observers are
// approved immediately; every other role waits for approval.
func (s *RegistrationService) Register(ctx context.Context, reg Registration) (*models.Account, error) {
	if reg == nil {
		return nil, apperrors.NewValidation("role", "is required")
	}
	if err := Validate(reg); err != nil {
		return nil, err
	}

	id := reg.identity()
	email := strings.ToLower(strings.TrimSpace(id.Email))
	if _, err := s.Store.GetAccountByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidation("email", "is already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	account := &models.Account{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Role:      reg.Role(),
		Approved:  reg.Role() == models.RoleObserver,
	}
	reg.apply(account)

	if err := s.Store.UpsertAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	log.Printf("👤 [REGISTER] new %s account %s (approved=%t)", account.Role, account.ID, account.Approved)
	return account, nil
}

// EnsureBootstrapAdmin makes sure an approved admin exists for email. Admins
// cannot self-register, so this is the only way the first one appears.
func (s *RegistrationService) EnsureBootstrapAdmin(ctx context.Context, email string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.NewValidation("email", "is required")
	}

	existing, err := s.Store.GetAccountByEmail(ctx, email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			return nil, apperrors.NewValidation("email", "belongs to a non-admin account")
		}
		if !existing.Approved {
			existing.Approved = true
			if err := s.Store.UpsertAccount(ctx, existing); err != nil {
				return nil, fmt.Errorf("approve bootstrap admin: %w", err)
			}
		}
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	admin := &models.Account{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: "Admin",
		Role:      models.RoleAdmin,
		Approved:  true,
	}
	if err := s.Store.UpsertAccount(ctx, admin); err != nil {
		return nil, fmt.Errorf("create bootstrap admin: %w", err)
	}
	log.Printf("🔑 [REGISTER] bootstrap admin %s created", admin.ID)
	return admin, nil
}
