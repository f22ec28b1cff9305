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
	"github.com/gosimple/slug"
)

const dateLayout = "2006-01-02"

// CompetitionInput describes a new competition. Dates are calendar days
// (YYYY-MM-DD); the end date is inclusive.
type CompetitionInput struct {
	Name      string `json:"name" validate:"required,max=200"`
	Venue     string `json:"venue" validate:"max=200"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"`
}

// SessionInput describes a new session of a competition.
type SessionInput struct {
	Name     string    `json:"name" validate:"required,max=200"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt"`
}

// CompetitionService manages competitions and sessions. Statuses are always
// derived at read time.
type CompetitionService struct {
	Store CompetitionStore
	Now   Clock
}

func NewCompetitionService(store CompetitionStore) *CompetitionService {
	return &CompetitionService{Store: store, Now: time.Now}
}

// CreateCompetition creates a competition owned by actor.
func (s *CompetitionService) CreateCompetition(ctx context.Context, actor *models.Account, in CompetitionInput) (*models.Competition, error) {
	if err := CanPerform(actor, ActionCreateCompetition, nil).Err(nil); err != nil {
		return nil, err
	}
	if err := Validate(in); err != nil {
		return nil, err
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, apperrors.NewValidation("startDate", "must be a date in YYYY-MM-DD format")
	}
	end := start
	if in.EndDate != "" {
		end, err = time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, apperrors.NewValidation("endDate", "must be a date in YYYY-MM-DD format")
		}
	}
	if end.Before(start) {
		return nil, apperrors.NewValidation("endDate", "must not be before startDate")
	}

	c := &models.Competition{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Slug:      slug.Make(in.Name),
		Venue:     in.Venue,
		StartDate: start,
		EndDate:   end,
		CreatedBy: actor.ID,
	}
	if err := s.Store.CreateCompetition(ctx, c); err != nil {
		return nil, fmt.Errorf("create competition: %w", err)
	}

	log.Printf("🏟️ [COMPETITION] %s created competition %s (%s)", actor.ID, c.ID, c.Slug)
	return c.ResolveStatus(s.Now()), nil
}

// GetCompetition loads one competition.
func (s *CompetitionService) GetCompetition(ctx context.Context, viewer *models.Account, id string) (*models.Competition, error) {
	if err := CanPerform(viewer, ActionViewResults, nil).Err(nil); err != nil {
		return nil, err
	}
	c, err := s.Store.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.ResolveStatus(s.Now()), nil
}

// ListCompetitions returns every competition, soonest start first, optionally
// filtered by derived status.
func (s *CompetitionService) ListCompetitions(ctx context.Context, viewer *models.Account, status models.Status) ([]models.Competition, error) {
	if err := CanPerform(viewer, ActionViewResults, nil).Err(nil); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, apperrors.NewValidation("status", "must be one of: upcoming live completed")
	}

	all, err := s.Store.ListCompetitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	now := s.Now()
	out := make([]models.Competition, 0, len(all))
	for i := range all {
		c := all[i].ResolveStatus(now)
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

// OverrideStatus pins a competition's status, or clears the pin when
// override is nil.
func (s *CompetitionService) OverrideStatus(ctx context.Context, actor *models.Account, id string, override *models.Status) (*models.Competition, error) {
	if err := CanPerform(actor, ActionCreateCompetition, nil).Err(nil); err != nil {
		return nil, err
	}
	if override != nil && !override.Valid() {
		return nil, apperrors.NewValidation("status", "must be one of: upcoming live completed")
	}
	if _, err := s.Store.GetCompetition(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Store.SetCompetitionStatusOverride(ctx, id, override); err != nil {
		return nil, fmt.Errorf("override status: %w", err)
	}
	c, err := s.Store.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.ResolveStatus(s.Now()), nil
}

// OverrideSessionStatus pins a session's status, or clears the pin when
// override is nil.
func (s *CompetitionService) OverrideSessionStatus(ctx context.Context, actor *models.Account, id string, override *models.Status) (*models.Session, error) {
	if err := CanPerform(actor, ActionCreateCompetition, nil).Err(nil); err != nil {
		return nil, err
	}
	if override != nil && !override.Valid() {
		return nil, apperrors.NewValidation("status", "must be one of: upcoming live completed")
	}
	if err := s.Store.SetSessionStatusOverride(ctx, id, override); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("override session status: %w", err)
	}
	sess, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Printf("🗓️ [COMPETITION] %s set session %s status override to %v", actor.ID, id, describeOverride(override))
	return sess.ResolveStatus(s.Now()), nil
}

func describeOverride(override *models.Status) string {
	if override == nil {
		return "none"
	}
	return string(*override)
}

// CreateSession adds a session to a competition.
func (s *CompetitionService) CreateSession(ctx context.Context, actor *models.Account, competitionID string, in SessionInput) (*models.Session, error) {
	if err := CanPerform(actor, ActionCreateCompetition, nil).Err(nil); err != nil {
		return nil, err
	}
	if err := Validate(in); err != nil {
		return nil, err
	}
	if !in.EndsAt.IsZero() && !in.EndsAt.After(in.StartsAt) {
		return nil, apperrors.NewValidation("endsAt", "must be after startsAt")
	}
	if _, err := s.Store.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	sess := &models.Session{
		ID:            uuid.NewString(),
		CompetitionID: competitionID,
		Name:          in.Name,
		StartsAt:      in.StartsAt.UTC(),
		EndsAt:        in.EndsAt.UTC(),
	}
	if in.EndsAt.IsZero() {
		sess.EndsAt = time.Time{}
	}
	if err := s.Store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	log.Printf("🗓️ [COMPETITION] %s added session %s to %s", actor.ID, sess.ID, competitionID)
	return sess.ResolveStatus(s.Now()), nil
}

// ListSessions returns a competition's sessions in start order.
func (s *CompetitionService) ListSessions(ctx context.Context, viewer *models.Account, competitionID string) ([]models.Session, error) {
	if err := CanPerform(viewer, ActionViewResults, nil).Err(nil); err != nil {
		return nil, err
	}
	if _, err := s.Store.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}
	sessions, err := s.Store.ListSessions(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	now := s.Now()
	for i := range sessions {
		sessions[i].ResolveStatus(now)
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].StartsAt.Before(sessions[j].StartsAt) })
	return sessions, nil
}
