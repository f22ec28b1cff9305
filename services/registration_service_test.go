package services

import (
	"context"
	"errors"
	"testing"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
)

func TestRegister(t *testing.T) {
	id := func(email string) Identity {
		return Identity{Email: email, FirstName: "Rae", LastName: "Quinn"}
	}
	tests := []struct {
		name     string
		reg      Registration
		role     models.Role
		approved bool
	}{
		{"observer is approved", ObserverRegistration{Identity: id("obs@example.com")}, models.RoleObserver, true},
		{"judge waits", JudgeRegistration{Identity: id("judge@example.com"), JudgeID: "FIG-12", DisplayName: "R. Quinn"}, models.RoleJudge, false},
		{"club waits", ClubRegistration{Identity: id("club@example.com"), ClubName: "Riverside GC", ClubUsername: "riverside", Location: "Leeds"}, models.RoleClub, false},
		{"gymnast waits", GymnastRegistration{Identity: id("gym@example.com"), ClubAffiliation: "Riverside GC"}, models.RoleGymnast, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRegistrationService(newMemStore())
			acc, err := svc.Register(context.Background(), tt.reg)
			if err != nil {
				t.Fatalf("register: %v", err)
			}
			if acc.Role != tt.role || acc.Approved != tt.approved || acc.ID == "" {
				t.Fatalf("account = %+v", acc)
			}
		})
	}
}

func TestRegisterProfileFields(t *testing.T) {
	svc := NewRegistrationService(newMemStore())
	acc, err := svc.Register(context.Background(), ClubRegistration{
		Identity:     Identity{Email: "Club@Example.com", FirstName: "Lee", LastName: "Hart"},
		ClubName:     "Riverside GC",
		ClubUsername: "riverside",
		Location:     "Leeds",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acc.Email != "club@example.com" || acc.ClubName != "Riverside GC" || acc.Location != "Leeds" {
		t.Fatalf("account = %+v", acc)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		reg   Registration
		field string
	}{
		{"missing role", nil, "role"},
		{"bad email", ObserverRegistration{Identity: Identity{Email: "nope", FirstName: "A", LastName: "B"}}, "email"},
		{"missing judge id", JudgeRegistration{Identity: Identity{Email: "j@example.com", FirstName: "A", LastName: "B"}, DisplayName: "AB"}, "judgeId"},
		{"missing club affiliation", GymnastRegistration{Identity: Identity{Email: "g@example.com", FirstName: "A", LastName: "B"}}, "clubAffiliation"},
		{"missing location", ClubRegistration{Identity: Identity{Email: "c@example.com", FirstName: "A", LastName: "B"}, ClubName: "X", ClubUsername: "x"}, "location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistrationService(newMemStore()).Register(context.Background(), tt.reg)
			var v *apperrors.Validation
			if !errors.As(err, &v) {
				t.Fatalf("expected Validation, got %v", err)
			}
			if v.Field != tt.field {
				t.Fatalf("Field = %q, want %q", v.Field, tt.field)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewRegistrationService(newMemStore())
	reg := ObserverRegistration{Identity: Identity{Email: "dup@example.com", FirstName: "A", LastName: "B"}}
	if _, err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	reg.Email = "DUP@example.com"
	if _, err := svc.Register(context.Background(), reg); apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("duplicate: %v", err)
	}
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	store := newMemStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	admin, err := svc.EnsureBootstrapAdmin(ctx, "Root@Example.com")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if admin.Role != models.RoleAdmin || !admin.Approved || admin.Email != "root@example.com" {
		t.Fatalf("admin = %+v", admin)
	}

	again, err := svc.EnsureBootstrapAdmin(ctx, "root@example.com")
	if err != nil || again.ID != admin.ID {
		t.Fatalf("second bootstrap = %+v, %v", again, err)
	}

	seedAccount(store, models.Account{ID: "o", Email: "obs@example.com", Role: models.RoleObserver})
	if _, err := svc.EnsureBootstrapAdmin(ctx, "obs@example.com"); apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("non-admin email: %v", err)
	}
	if _, err := svc.EnsureBootstrapAdmin(ctx, ""); apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("empty email: %v", err)
	}
}
