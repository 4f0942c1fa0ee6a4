package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/features/audition/progression"
	rOneDTO "audition_backend/internals/features/audition/round_one/dto"
	rOneModel "audition_backend/internals/features/audition/round_one/model"
	rOneService "audition_backend/internals/features/audition/round_one/service"
	rTwoDTO "audition_backend/internals/features/audition/round_two/dto"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	userModel "audition_backend/internals/features/users/user/model"
	"audition_backend/internals/testutil"
)

type roundTwoFixture struct {
	user *userModel.UserModel
	rt   *rTwoModel.RoundTwoModel
}

func setupRoundTwoCandidate(t *testing.T, db *gorm.DB) roundTwoFixture {
	t.Helper()
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{Round: 2, HasGivenExam: true})
	rt := testutil.CreateTestRoundTwo(t, db, u.ID, testutil.IntPtr(3), progression.StatusSubmitted)
	return roundTwoFixture{user: u, rt: rt}
}

func reviewRequest(f roundTwoFixture, rating int) *rTwoDTO.ReviewRequest {
	req := &rTwoDTO.ReviewRequest{
		UserID:     &f.user.ID,
		RoundTwoID: &f.rt.ID,
		Attendance: true,
		TaskGiven:  "Build a REST API",
		ClubPrefer: "Tech",
		SubDomain:  "Backend",
		HsPlace:    "Lab 2",
		Reviews:    []string{"clean code", "good demo"},
		Remarks:    "solid",
		Rating:     testutil.IntPtr(rating),
		GD:         "active",
		General:    "ok",
	}
	req.Normalize()
	return req
}

func reloadUser(t *testing.T, db *gorm.DB, u *userModel.UserModel) userModel.UserModel {
	t.Helper()
	var out userModel.UserModel
	if err := db.First(&out, "id = ?", u.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return out
}

func roundTwoAudition(t *testing.T, db *gorm.DB, u *userModel.UserModel) rOneModel.AuditionRoundModel {
	t.Helper()
	var ar rOneModel.AuditionRoundModel
	if err := db.First(&ar, "user_id = ? AND round = ?", u.ID, 2).Error; err != nil {
		t.Fatalf("load round 2 audition: %v", err)
	}
	return ar
}

func TestSubmitReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	f := setupRoundTwoCandidate(t, db)

	res, err := svc.SubmitReview(ctx, reviewRequest(f, 7), "reviewer")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}
	if res.RoundTwo.Status != progression.StatusReviewed {
		t.Errorf("Expected status %s, got %s", progression.StatusReviewed, res.RoundTwo.Status)
	}
	if res.Review.Rating != 7 || res.Review.Forwarded || res.Review.ForwardDecidedAt != nil {
		t.Errorf("Unexpected review: %+v", res.Review)
	}
	if len(res.Review.Reviews) != 2 {
		t.Errorf("Expected 2 review notes, got %v", res.Review.Reviews)
	}

	ar := roundTwoAudition(t, db, f.user)
	if ar.FinalSelection != nil {
		t.Errorf("Review must not decide acceptance, got finalSelection=%v", *ar.FinalSelection)
	}
	if ar.Panel == nil || *ar.Panel != 3 {
		t.Errorf("Expected panel copied from round two (3), got %v", ar.Panel)
	}

	if got := reloadUser(t, db, f.user); got.Round != 2 {
		t.Errorf("Review must not change round, got %d", got.Round)
	}
}

func TestSubmitReviewUpsertsSingleRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	f := setupRoundTwoCandidate(t, db)

	if _, err := svc.SubmitReview(ctx, reviewRequest(f, 4), "reviewer"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.SubmitReview(ctx, reviewRequest(f, 9), "reviewer"); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	var rows []rTwoModel.RoundTwoReviewModel
	if err := db.Where("round_two_id = ?", f.rt.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load reviews: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected exactly 1 review row, got %d", len(rows))
	}
	if rows[0].Rating != 9 {
		t.Errorf("Expected latest rating 9, got %d", rows[0].Rating)
	}

	var n int64
	db.Model(&rOneModel.AuditionRoundModel{}).Where("user_id = ? AND round = 2", f.user.ID).Count(&n)
	if n != 1 {
		t.Errorf("Expected one round 2 audition row, got %d", n)
	}
}

func TestSubmitReviewPreconditions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	f := setupRoundTwoCandidate(t, db)

	roundOne := testutil.CreateTestUser(t, db, testutil.UserOpts{Round: 1})
	noRoundTwo := testutil.CreateTestUser(t, db, testutil.UserOpts{Round: 2})
	other := setupRoundTwoCandidate(t, db)

	tests := []struct {
		name   string
		mutate func(r *rTwoDTO.ReviewRequest)
		status int
	}{
		{"missing userId", func(r *rTwoDTO.ReviewRequest) { r.UserID = nil }, fiber.StatusBadRequest},
		{"missing roundTwoId", func(r *rTwoDTO.ReviewRequest) { r.RoundTwoID = nil }, fiber.StatusBadRequest},
		{"rating above 10", func(r *rTwoDTO.ReviewRequest) { r.Rating = testutil.IntPtr(11) }, fiber.StatusBadRequest},
		{"rating below 0", func(r *rTwoDTO.ReviewRequest) { r.Rating = testutil.IntPtr(-1) }, fiber.StatusBadRequest},
		{"user in round 1", func(r *rTwoDTO.ReviewRequest) { r.UserID = &roundOne.ID }, fiber.StatusBadRequest},
		{"user without round two", func(r *rTwoDTO.ReviewRequest) { r.UserID = &noRoundTwo.ID }, fiber.StatusNotFound},
		{"round two of another user", func(r *rTwoDTO.ReviewRequest) { r.RoundTwoID = &other.rt.ID }, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := reviewRequest(f, 5)
			tt.mutate(req)
			_, err := svc.SubmitReview(ctx, req, "reviewer")
			testutil.AssertFiberStatus(t, err, tt.status)
		})
	}

	var n int64
	db.Model(&rTwoModel.RoundTwoReviewModel{}).Count(&n)
	if n != 0 {
		t.Errorf("Rejected reviews must not persist rows, got %d", n)
	}
}

func TestEvaluateRoundTwo(t *testing.T) {
	tests := []struct {
		name           string
		finalSelection bool
		wantRound      int
		wantStatus     string
	}{
		{"accepted moves to round 3", true, 3, progression.StatusAccepted},
		{"rejected stays in round 2", false, 2, progression.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			svc := NewReviewService(db)
			ctx := context.Background()
			f := setupRoundTwoCandidate(t, db)

			res, err := svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{
				UserID:         &f.user.ID,
				FinalSelection: testutil.BoolPtr(tt.finalSelection),
			}, "admin")
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if res.UserRound != tt.wantRound {
				t.Errorf("Expected response round %d, got %d", tt.wantRound, res.UserRound)
			}
			if got := reloadUser(t, db, f.user); got.Round != tt.wantRound {
				t.Errorf("Expected user round %d, got %d", tt.wantRound, got.Round)
			}

			var rt rTwoModel.RoundTwoModel
			db.First(&rt, "id = ?", f.rt.ID)
			if rt.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, rt.Status)
			}

			ar := roundTwoAudition(t, db, f.user)
			if ar.FinalSelection == nil || *ar.FinalSelection != tt.finalSelection {
				t.Errorf("Expected finalSelection %v, got %v", tt.finalSelection, ar.FinalSelection)
			}

			var reviews []rOneModel.ReviewModel
			db.Where("audition_round_id = ?", ar.ID).Find(&reviews)
			if len(reviews) != 1 {
				t.Fatalf("Expected one audit review, got %d", len(reviews))
			}
			if reviews[0].EvaluatedBy != "admin" || reviews[0].Remarks == "" {
				t.Errorf("Expected audit review with default remarks, got %+v", reviews[0])
			}
			if reviews[0].Panel != 3 {
				t.Errorf("Expected review panel 3, got %d", reviews[0].Panel)
			}
		})
	}
}

func TestEvaluateRoundTwoAtMostOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	f := setupRoundTwoCandidate(t, db)

	first := &rTwoDTO.EvaluateRequest{UserID: &f.user.ID, FinalSelection: testutil.BoolPtr(false)}
	if _, err := svc.Evaluate(ctx, first, "admin"); err != nil {
		t.Fatalf("first Evaluate failed: %v", err)
	}

	for _, fs := range []bool{true, false} {
		_, err := svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{UserID: &f.user.ID, FinalSelection: testutil.BoolPtr(fs)}, "admin")
		testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)
	}

	if got := reloadUser(t, db, f.user); got.Round != 2 {
		t.Errorf("Second evaluation must not change round, got %d", got.Round)
	}
	var reviews int64
	db.Model(&rOneModel.ReviewModel{}).Count(&reviews)
	if reviews != 1 {
		t.Errorf("Expected a single audit review, got %d", reviews)
	}
}

func TestEvaluateRoundTwoPreconditions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	roundOne := testutil.CreateTestUser(t, db, testutil.UserOpts{Round: 1})
	_, err := svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{UserID: &roundOne.ID, FinalSelection: testutil.BoolPtr(true)}, "admin")
	testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)

	noRoundTwo := testutil.CreateTestUser(t, db, testutil.UserOpts{Round: 2})
	_, err = svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{UserID: &noRoundTwo.ID, FinalSelection: testutil.BoolPtr(true)}, "admin")
	testutil.AssertFiberStatus(t, err, fiber.StatusNotFound)

	_, err = svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{UserID: &noRoundTwo.ID}, "admin")
	testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestForwardRequiresReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	f := setupRoundTwoCandidate(t, db)

	fwd := &rTwoDTO.ForwardRequest{UserID: &f.user.ID, Forwarded: testutil.BoolPtr(true), Remarks: testutil.StrPtr("to whatsapp group")}

	_, err := svc.Forward(ctx, fwd, "admin")
	testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)

	if _, err := svc.SubmitReview(ctx, reviewRequest(f, 8), "reviewer"); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	res, err := svc.Forward(ctx, fwd, "admin")
	if err != nil {
		t.Fatalf("Forward after review failed: %v", err)
	}
	if !res.Review.Forwarded || res.Review.ForwardDecidedAt == nil {
		t.Errorf("Expected forwarded with decision time, got %+v", res.Review)
	}
	if res.Review.Remarks != "to whatsapp group" {
		t.Errorf("Expected remarks updated, got %q", res.Review.Remarks)
	}
	if res.Review.ReviewedBy == nil || *res.Review.ReviewedBy != "admin" {
		t.Errorf("Expected reviewedBy admin, got %v", res.Review.ReviewedBy)
	}

	if got := reloadUser(t, db, f.user); got.Round != 2 {
		t.Errorf("Forward must not change round, got %d", got.Round)
	}
	if ar := roundTwoAudition(t, db, f.user); ar.FinalSelection != nil {
		t.Errorf("Forward must not set finalSelection, got %v", *ar.FinalSelection)
	}
}

func TestSubmitReviewAfterVerdictRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	f := setupRoundTwoCandidate(t, db)

	if _, err := svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{UserID: &f.user.ID, FinalSelection: testutil.BoolPtr(true)}, "admin"); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	_, err := svc.SubmitReview(ctx, reviewRequest(f, 3), "reviewer")
	testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)

	if ar := roundTwoAudition(t, db, f.user); ar.FinalSelection == nil || !*ar.FinalSelection {
		t.Errorf("Verdict must survive a late review, got %v", ar.FinalSelection)
	}
}

func TestRoundOneReEvaluationKeepsRoundTwoVerdict(t *testing.T) {
	tests := []struct {
		name           string
		finalSelection bool
		wantRound      int
		wantStatus     string
	}{
		{"rejected stays rejected", false, 2, progression.StatusRejected},
		{"accepted stays accepted", true, 3, progression.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			svc := NewReviewService(db)
			roundOne := rOneService.NewEvaluationService(db)
			ctx := context.Background()
			f := setupRoundTwoCandidate(t, db)

			if _, err := svc.SubmitReview(ctx, reviewRequest(f, 6), "reviewer"); err != nil {
				t.Fatalf("SubmitReview failed: %v", err)
			}
			if _, err := svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{
				UserID:         &f.user.ID,
				FinalSelection: testutil.BoolPtr(tt.finalSelection),
			}, "admin"); err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}

			res, err := roundOne.SubmitEvaluation(ctx, &rOneDTO.SubmitEvaluationRequest{
				UserID:         &f.user.ID,
				Panel:          testutil.IntPtr(5),
				Remarks:        "re-checked",
				FinalSelection: testutil.BoolPtr(true),
				EvaluatedBy:    "panel-lead",
			})
			if err != nil {
				t.Fatalf("round 1 SubmitEvaluation failed: %v", err)
			}
			if res.RoundTwo == nil || res.RoundTwo.Status != tt.wantStatus {
				t.Errorf("Expected round 2 status %s in response, got %+v", tt.wantStatus, res.RoundTwo)
			}

			var rt rTwoModel.RoundTwoModel
			db.First(&rt, "id = ?", f.rt.ID)
			if rt.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, rt.Status)
			}
			if rt.Panel == nil || *rt.Panel != 3 {
				t.Errorf("Expected panel 3 kept, got %v", rt.Panel)
			}

			_, err = svc.SubmitReview(ctx, reviewRequest(f, 9), "reviewer")
			testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)

			_, err = svc.Evaluate(ctx, &rTwoDTO.EvaluateRequest{UserID: &f.user.ID, FinalSelection: testutil.BoolPtr(true)}, "admin")
			testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)

			if got := reloadUser(t, db, f.user); got.Round != tt.wantRound {
				t.Errorf("Expected user round %d, got %d", tt.wantRound, got.Round)
			}
			ar := roundTwoAudition(t, db, f.user)
			if ar.FinalSelection == nil || *ar.FinalSelection != tt.finalSelection {
				t.Errorf("Expected finalSelection %v kept, got %v", tt.finalSelection, ar.FinalSelection)
			}
		})
	}
}
