package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gym-scoring-system/models"
)

// ErrPublishingDisabled is returned when no object store is configured.
var ErrPublishingDisabled = errors.New("results publishing is not configured")

// ObjectUploader stores a blob and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ResultsSnapshot is the published form of a session's results.
type ResultsSnapshot struct {
	Competition *models.Competition            `json:"competition"`
	Session     *models.Session                `json:"session"`
	Apparatus   map[string][]RankedParticipant `json:"apparatus"`
	AllAround   []RankedParticipant            `json:"allAround"`
	PublishedAt time.Time                      `json:"publishedAt"`
	PublishedBy string                         `json:"publishedBy"`
}

// PublishedResults points at an uploaded snapshot.
type PublishedResults struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ResultsService publishes session results to object storage.
type ResultsService struct {
	Competitions CompetitionStore
	Rankings     *RankingService
	Uploader     ObjectUploader
	Now          Clock
}

func NewResultsService(store Store, rankings *RankingService, uploader ObjectUploader) *ResultsService {
	return &ResultsService{
		Competitions: store,
		Rankings:     rankings,
		Uploader:     uploader,
		Now:          time.Now,
	}
}

// Publish uploads a JSON snapshot of every apparatus ranking and the
// all-around ranking of a session.
func (s *ResultsService) Publish(ctx context.Context, actor *models.Account, sessionID string) (*PublishedResults, error) {
	if err := CanPerform(actor, ActionCreateCompetition, nil).Err(nil); err != nil {
		return nil, err
	}
	if s.Uploader == nil {
		return nil, ErrPublishingDisabled
	}

	session, err := s.Competitions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	competition, err := s.Competitions.GetCompetition(ctx, session.CompetitionID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	snapshot := ResultsSnapshot{
		Competition: competition.ResolveStatus(now),
		Session:     session.ResolveStatus(now),
		Apparatus:   make(map[string][]RankedParticipant, len(models.ApparatusCatalog)),
		PublishedAt: now.UTC(),
		PublishedBy: actor.ID,
	}
	for _, info := range models.ApparatusCatalog {
		r, err := s.Rankings.ApparatusRanking(ctx, actor, session.ID, string(info.Code))
		if err != nil {
			return nil, err
		}
		snapshot.Apparatus[string(info.Code)] = r.Rows
	}
	aa, err := s.Rankings.AllAroundRanking(ctx, actor, session.ID)
	if err != nil {
		return nil, err
	}
	snapshot.AllAround = aa.Rows

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}

	key := ResultsKey(competition, session)
	url, err := s.Uploader.Upload(ctx, key, body, "application/json")
	if err != nil {
		return nil, fmt.Errorf("upload results: %w", err)
	}

	log.Printf("📤 [RESULTS] %s published session %s to %s", actor.ID, session.ID, url)
	return &PublishedResults{Key: key, URL: url}, nil
}

// ResultsKey is the object key of a session's results snapshot.
func ResultsKey(c *models.Competition, sess *models.Session) string {
	prefix := c.Slug
	if prefix == "" {
		prefix = c.ID
	}
	return fmt.Sprintf("results/%s/%s.json", prefix, sess.ID)
}
