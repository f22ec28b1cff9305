package services

import (
	"sort"
	"time"

	"gym-scoring-system/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RankedParticipant is one row of a ranking.
type RankedParticipant struct {
	// Position is 1-based for positive scores and 0 for zero or unscored rows.
	Position    int                      `json:"position"`
	Participant models.ParticipantRecord `json:"participant"`
	Apparatus   models.Apparatus         `json:"apparatus,omitempty"`
	Final       string                   `json:"final"`
	FinalExact  decimal.Decimal          `json:"finalExact"`
	Scored      bool                     `json:"scored"`
	ScoreID     string                   `json:"scoreId,omitempty"`
	SubmittedAt *time.Time               `json:"submittedAt,omitempty"`
	// Breakdown holds per-apparatus finals for all-around rows.
	Breakdown map[models.Apparatus]string `json:"breakdown,omitempty"`
}

type scoreKey struct {
	session     string
	participant string
	apparatus   models.Apparatus
}

// AuthoritativeScores keeps the most recently created entry per (session,
// participant, apparatus). Equal timestamps fall back to the larger id so the
// choice never depends on input order.
func AuthoritativeScores(scores []models.ScoreEntry) []models.ScoreEntry {
	latest := make(map[scoreKey]models.ScoreEntry, len(scores))
	for _, s := range scores {
		k := scoreKey{s.SessionID, s.ParticipantID, s.Apparatus}
		cur, ok := latest[k]
		if !ok || s.CreatedAt.After(cur.CreatedAt) || (s.CreatedAt.Equal(cur.CreatedAt) && s.ID > cur.ID) {
			latest[k] = s
		}
	}

	out := make([]models.ScoreEntry, 0, len(latest))
	for _, s := range latest {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SessionID != b.SessionID {
			return a.SessionID < b.SessionID
		}
		if a.ParticipantID != b.ParticipantID {
			return a.ParticipantID < b.ParticipantID
		}
		return a.Apparatus.Order() < b.Apparatus.Order()
	})
	return out
}

// Rank orders roster participants on one apparatus. Positive finals come
// first, highest first; equal finals go to the earlier submission, then by
// name. Participants without an authoritative score and those whose final is
// exactly zero are treated alike and follow in name order.
func Rank(roster []models.ParticipantRecord, scores []models.ScoreEntry, apparatus models.Apparatus) []RankedParticipant {
	byParticipant := make(map[string]models.ScoreEntry)
	for _, s := range AuthoritativeScores(scores) {
		if s.Apparatus != apparatus {
			continue
		}
		cur, ok := byParticipant[s.ParticipantID]
		if !ok || s.CreatedAt.After(cur.CreatedAt) {
			byParticipant[s.ParticipantID] = s
		}
	}

	rows := make([]RankedParticipant, 0, len(roster))
	for _, p := range uniqueRoster(roster) {
		row := RankedParticipant{
			Participant: p,
			Apparatus:   apparatus,
			FinalExact:  decimal.Zero,
		}
		if s, ok := byParticipant[p.ID]; ok {
			submitted := s.CreatedAt
			row.FinalExact = s.Final
			row.ScoreID = s.ID
			row.SubmittedAt = &submitted
			row.Scored = s.Final.IsPositive()
		}
		row.Final = FormatScore(row.FinalExact)
		rows = append(rows, row)
	}

	orderRows(rows)
	return rows
}

// RankAllAround orders roster participants by the sum of their authoritative
// finals across the apparatus catalog, under the same policy as Rank. The tie
// key is the latest contributing submission.
func RankAllAround(roster []models.ParticipantRecord, scores []models.ScoreEntry) []RankedParticipant {
	type total struct {
		sum       decimal.Decimal
		latest    time.Time
		breakdown map[models.Apparatus]string
	}
	totals := make(map[string]*total)
	for _, s := range AuthoritativeScores(scores) {
		t, ok := totals[s.ParticipantID]
		if !ok {
			t = &total{sum: decimal.Zero, breakdown: make(map[models.Apparatus]string)}
			totals[s.ParticipantID] = t
		}
		t.sum = t.sum.Add(s.Final)
		t.breakdown[s.Apparatus] = FormatScore(s.Final)
		if s.CreatedAt.After(t.latest) {
			t.latest = s.CreatedAt
		}
	}

	rows := make([]RankedParticipant, 0, len(roster))
	for _, p := range uniqueRoster(roster) {
		row := RankedParticipant{Participant: p, FinalExact: decimal.Zero}
		if t, ok := totals[p.ID]; ok {
			latest := t.latest
			row.FinalExact = t.sum
			row.SubmittedAt = &latest
			row.Breakdown = t.breakdown
			row.Scored = t.sum.IsPositive()
		}
		row.Final = FormatScore(row.FinalExact)
		rows = append(rows, row)
	}

	orderRows(rows)
	return rows
}

func orderRows(rows []RankedParticipant) {
	col := collate.New(language.Und)
	byName := func(a, b *models.ParticipantRecord) bool {
		if c := col.CompareString(a.LastName, b.LastName); c != 0 {
			return c < 0
		}
		if c := col.CompareString(a.FirstName, b.FirstName); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Scored != b.Scored {
			return a.Scored
		}
		if !a.Scored {
			return byName(&a.Participant, &b.Participant)
		}
		if c := a.FinalExact.Cmp(b.FinalExact); c != 0 {
			return c > 0
		}
		if !a.SubmittedAt.Equal(*b.SubmittedAt) {
			return a.SubmittedAt.Before(*b.SubmittedAt)
		}
		return byName(&a.Participant, &b.Participant)
	})

	for i := range rows {
		if rows[i].Scored {
			rows[i].Position = i + 1
		}
	}
}

func uniqueRoster(roster []models.ParticipantRecord) []models.ParticipantRecord {
	seen := make(map[string]bool, len(roster))
	out := make([]models.ParticipantRecord, 0, len(roster))
	for _, p := range roster {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
