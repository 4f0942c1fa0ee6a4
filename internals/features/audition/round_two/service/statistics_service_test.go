package service

import (
	"context"
	"reflect"
	"testing"

	rTwoDTO "audition_backend/internals/features/audition/round_two/dto"
	"audition_backend/internals/testutil"
)

func assertStatsConsistent(t *testing.T, st *rTwoDTO.Statistics) {
	t.Helper()
	if st.PendingForwardDecision < 0 {
		t.Errorf("pendingForwardDecision must be non-negative, got %d", st.PendingForwardDecision)
	}
	if st.PendingForwardDecision != st.TotalReviewed-st.TotalForwarded-st.TotalNotForwarded {
		t.Errorf("pending %d != reviewed %d - forwarded %d - notForwarded %d",
			st.PendingForwardDecision, st.TotalReviewed, st.TotalForwarded, st.TotalNotForwarded)
	}
}

func TestStatisticsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st, err := NewStatisticsService(db).Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if st.TotalCandidates != 0 || st.TotalReviewed != 0 || len(st.PerPanel) != 0 {
		t.Errorf("Expected zero stats, got %+v", st)
	}
	assertStatsConsistent(t, st)
}

func TestStatisticsConsistency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	reviews := NewReviewService(db)
	tasks := NewTaskService(db)
	stats := NewStatisticsService(db)

	// 5 kandidat: 4 direview, 1 forwarded, 1 tidak, 2 pending; 1 diterima
	fixtures := make([]roundTwoFixture, 0, 5)
	for i := 0; i < 5; i++ {
		fixtures = append(fixtures, setupRoundTwoCandidate(t, db))
	}
	assertStatsConsistent(t, mustStats(t, stats))

	for _, f := range fixtures[:4] {
		if _, err := reviews.SubmitReview(ctx, reviewRequest(f, 6), "reviewer"); err != nil {
			t.Fatalf("SubmitReview failed: %v", err)
		}
		assertStatsConsistent(t, mustStats(t, stats))
	}

	forward := func(f roundTwoFixture, v bool) {
		if _, err := reviews.Forward(ctx, &rTwoDTO.ForwardRequest{UserID: &f.user.ID, Forwarded: testutil.BoolPtr(v)}, "admin"); err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
	}
	forward(fixtures[0], true)
	forward(fixtures[1], false)

	if _, err := reviews.Evaluate(ctx, &rTwoDTO.EvaluateRequest{UserID: &fixtures[0].user.ID, FinalSelection: testutil.BoolPtr(true)}, "admin"); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if _, err := tasks.SubmitTask(ctx, fixtures[4].user.ID, &rTwoDTO.SubmitTaskRequest{TaskLink: "https://example.com/t"}); err != nil {
		t.Fatalf("SubmitTask failed: %v", err)
	}

	st := mustStats(t, stats)
	assertStatsConsistent(t, st)

	want := rTwoDTO.Statistics{
		TotalCandidates:        5,
		TotalSubmitted:         1,
		TotalReviewed:          4,
		TotalForwarded:         1,
		TotalNotForwarded:      1,
		PendingForwardDecision: 2,
		TotalAccepted:          1,
		TotalRejected:          0,
	}
	st.PerPanel = nil
	if !reflect.DeepEqual(*st, want) {
		t.Errorf("Unexpected statistics:\n got  %+v\n want %+v", *st, want)
	}

	full := mustStats(t, stats)
	if len(full.PerPanel) != 1 || full.PerPanel[0].Panel != 3 || full.PerPanel[0].Total != 5 || full.PerPanel[0].Accepted != 1 {
		t.Errorf("Unexpected per-panel counts: %+v", full.PerPanel)
	}
}

func mustStats(t *testing.T, svc *StatisticsService) *rTwoDTO.Statistics {
	t.Helper()
	st, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	return st
}
