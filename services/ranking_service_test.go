package services

import (
	"context"
	"testing"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
)

func TestApparatusRankingFollowsCorrections(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	viewer := approvedAccount("obs", models.RoleObserver)

	f.submit(t, "p1", "floor", "5", "8", "0")
	f.submit(t, "p2", "floor", "5", "7", "0")

	r, err := f.rankings.ApparatusRanking(ctx, viewer, "s1", "floor")
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if got := ids(r.Rows); !equalIDs(got, []string{"p1", "p2"}) {
		t.Fatalf("order = %v", got)
	}
	if _, hit, _ := f.cache.GetRanking(ctx, RankingKey("s1", "floor")); !hit {
		t.Fatal("ranking should be cached")
	}

	// A later entry for p1 replaces the earlier one and clears the cache.
	f.submit(t, "p1", "floor", "3", "7", "0")
	r, err = f.rankings.ApparatusRanking(ctx, viewer, "s1", "floor")
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if got := ids(r.Rows); !equalIDs(got, []string{"p2", "p1"}) {
		t.Fatalf("order after correction = %v", got)
	}
	if r.Rows[1].Final != "10.0" {
		t.Fatalf("p1 final = %s", r.Rows[1].Final)
	}
}

func TestApparatusRankingServedFromCache(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	cached := []RankedParticipant{{Position: 1, Participant: participant("x", "X", "Y"), Final: "1.0", Scored: true}}
	_ = f.cache.SetRanking(ctx, RankingKey("s1", "beam"), cached)

	r, err := f.rankings.ApparatusRanking(ctx, f.judge, "s1", "BEAM")
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(r.Rows) != 1 || r.Rows[0].Participant.ID != "x" {
		t.Fatalf("rows = %+v", r.Rows)
	}
}

func TestAllAroundRanking(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	f.submit(t, "p1", "floor", "5", "8", "0")
	f.submit(t, "p2", "floor", "5", "8", "0")
	f.submit(t, "p2", "beam", "4", "8", "1")

	r, err := f.rankings.AllAroundRanking(ctx, f.judge, "s1")
	if err != nil {
		t.Fatalf("all-around: %v", err)
	}
	if r.Apparatus != AllAroundKey || r.Rows[0].Participant.ID != "p2" || r.Rows[0].Final != "24.0" {
		t.Fatalf("ranking = %+v", r)
	}
}

func TestRankingGuards(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	if _, err := f.rankings.ApparatusRanking(ctx, nil, "s1", "floor"); apperrors.CodeOf(err) != apperrors.CodePermissionDenied {
		t.Fatalf("anonymous: %v", err)
	}
	if _, err := f.rankings.ApparatusRanking(ctx, f.judge, "s1", "rings"); apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("rings: %v", err)
	}
	if _, err := f.rankings.AllAroundRanking(ctx, f.judge, "nope"); !apperrors.IsNotFound(err) {
		t.Fatalf("missing session: %v", err)
	}
}

func TestParticipantStatsService(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	f.submit(t, "p1", "floor", "5", "3", "0")
	f.submit(t, "p1", "vault", "4", "5.5", "0")

	svc := NewStatsService(f.store)
	stats, err := svc.ParticipantStats(ctx, approvedAccount("g", models.RoleGymnast), "p1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !stats.HasHistory || stats.BestScore != "9.5" || stats.AverageScore != "8.8" || stats.TotalCompetitions != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	empty, err := svc.ParticipantStats(ctx, f.judge, "p2")
	if err != nil || empty.HasHistory {
		t.Fatalf("empty = %+v, %v", empty, err)
	}
	if _, err := svc.ParticipantStats(ctx, f.judge, "ghost"); !apperrors.IsNotFound(err) {
		t.Fatalf("ghost: %v", err)
	}
}
