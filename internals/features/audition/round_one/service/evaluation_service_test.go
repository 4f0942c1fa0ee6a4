package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"audition_backend/internals/features/audition/progression"
	rOneDTO "audition_backend/internals/features/audition/round_one/dto"
	rOneModel "audition_backend/internals/features/audition/round_one/model"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	userModel "audition_backend/internals/features/users/user/model"
	"audition_backend/internals/testutil"
)

func evalRequest(userID *uuid.UUID, selected bool, panel *int) *rOneDTO.SubmitEvaluationRequest {
	return &rOneDTO.SubmitEvaluationRequest{
		UserID:         userID,
		Panel:          panel,
		Remarks:        "good fundamentals",
		FinalSelection: testutil.BoolPtr(selected),
		EvaluatedBy:    "panel-lead",
	}
}

func userRound(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var u userModel.UserModel
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return u.Round
}

func TestSubmitEvaluationRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{HasGivenExam: true})

	res, err := svc.SubmitEvaluation(context.Background(), evalRequest(&u.ID, false, nil))
	if err != nil {
		t.Fatalf("SubmitEvaluation failed: %v", err)
	}
	if res.AuditionRound.Round != 1 || res.AuditionRound.FinalSelection == nil || *res.AuditionRound.FinalSelection {
		t.Errorf("Unexpected audition round: %+v", res.AuditionRound)
	}
	if res.RoundTwo != nil {
		t.Errorf("Rejected candidate must not get a round two record")
	}
	if got := userRound(t, db, u.ID); got != 1 {
		t.Errorf("Expected user to stay in round 1, got %d", got)
	}
}

func TestSubmitEvaluationAcceptedWithPanel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{HasGivenExam: true})

	res, err := svc.SubmitEvaluation(context.Background(), evalRequest(&u.ID, true, testutil.IntPtr(4)))
	if err != nil {
		t.Fatalf("SubmitEvaluation failed: %v", err)
	}
	if res.RoundTwo == nil {
		t.Fatal("Expected round two record to be created")
	}
	if res.RoundTwo.Status != progression.StatusAssigned || res.RoundTwo.Panel == nil || *res.RoundTwo.Panel != 4 {
		t.Errorf("Unexpected round two: %+v", res.RoundTwo)
	}
	if res.UserRound != 2 {
		t.Errorf("Expected response userRound 2, got %d", res.UserRound)
	}
	if got := userRound(t, db, u.ID); got != 2 {
		t.Errorf("Expected user promoted to round 2, got %d", got)
	}
	if res.Review.Panel != 4 {
		t.Errorf("Expected review panel 4, got %d", res.Review.Panel)
	}
}

func TestSubmitEvaluationAcceptedWithoutPanel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{HasGivenExam: true})

	res, err := svc.SubmitEvaluation(context.Background(), evalRequest(&u.ID, true, nil))
	if err != nil {
		t.Fatalf("SubmitEvaluation failed: %v", err)
	}
	if res.RoundTwo != nil {
		t.Errorf("No panel given, round two must not be created")
	}
	if got := userRound(t, db, u.ID); got != 1 {
		t.Errorf("Expected user to stay in round 1 without panel, got %d", got)
	}
	if res.Review.Panel != 0 {
		t.Errorf("Expected review panel 0, got %d", res.Review.Panel)
	}
}

func TestSubmitEvaluationAppendsReviews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	ctx := context.Background()
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{HasGivenExam: true})

	first, err := svc.SubmitEvaluation(ctx, evalRequest(&u.ID, false, nil))
	if err != nil {
		t.Fatalf("first evaluation failed: %v", err)
	}

	// update by id
	req := evalRequest(nil, true, testutil.IntPtr(2))
	req.AuditionRoundID = &first.AuditionRound.ID
	second, err := svc.SubmitEvaluation(ctx, req)
	if err != nil {
		t.Fatalf("second evaluation failed: %v", err)
	}
	if second.AuditionRound.ID != first.AuditionRound.ID {
		t.Errorf("Expected the same audition round to be updated")
	}

	// upsert by (user, round)
	if _, err := svc.SubmitEvaluation(ctx, evalRequest(&u.ID, true, testutil.IntPtr(2))); err != nil {
		t.Fatalf("third evaluation failed: %v", err)
	}

	var rounds int64
	db.Model(&rOneModel.AuditionRoundModel{}).Where("user_id = ? AND round = ?", u.ID, 1).Count(&rounds)
	if rounds != 1 {
		t.Errorf("Expected exactly one round-1 audition row, got %d", rounds)
	}
	var reviews int64
	db.Model(&rOneModel.ReviewModel{}).Where("audition_round_id = ?", first.AuditionRound.ID).Count(&reviews)
	if reviews != 3 {
		t.Errorf("Expected 3 appended reviews, got %d", reviews)
	}
	var rts int64
	db.Model(&rTwoModel.RoundTwoModel{}).Where("user_id = ?", u.ID).Count(&rts)
	if rts != 1 {
		t.Errorf("Expected a single round two row, got %d", rts)
	}
	if got := userRound(t, db, u.ID); got != 2 {
		t.Errorf("Expected user in round 2, got %d", got)
	}
}

func TestSubmitEvaluationKeepsHigherRound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{Round: 3, HasGivenExam: true})

	if _, err := svc.SubmitEvaluation(context.Background(), evalRequest(&u.ID, true, testutil.IntPtr(1))); err != nil {
		t.Fatalf("SubmitEvaluation failed: %v", err)
	}
	if got := userRound(t, db, u.ID); got != 3 {
		t.Errorf("Round must never decrease, got %d", got)
	}
}

func TestSubmitEvaluationErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	ctx := context.Background()
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{})
	other := testutil.CreateTestUser(t, db, testutil.UserOpts{})
	unknown := uuid.New()

	existing, err := svc.SubmitEvaluation(ctx, evalRequest(&u.ID, false, nil))
	if err != nil {
		t.Fatalf("setup evaluation failed: %v", err)
	}

	tests := []struct {
		name string
		req  *rOneDTO.SubmitEvaluationRequest
		code int
	}{
		{"missing user and round id", evalRequest(nil, true, nil), fiber.StatusBadRequest},
		{"unknown user", evalRequest(&unknown, true, nil), fiber.StatusNotFound},
		{"unknown audition round", func() *rOneDTO.SubmitEvaluationRequest {
			r := evalRequest(nil, true, nil)
			r.AuditionRoundID = &unknown
			return r
		}(), fiber.StatusNotFound},
		{"mismatched user", func() *rOneDTO.SubmitEvaluationRequest {
			r := evalRequest(&other.ID, true, nil)
			r.AuditionRoundID = &existing.AuditionRound.ID
			return r
		}(), fiber.StatusBadRequest},
		{"missing remarks", func() *rOneDTO.SubmitEvaluationRequest {
			r := evalRequest(&u.ID, true, nil)
			r.Remarks = ""
			return r
		}(), fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitEvaluation(ctx, tt.req)
			testutil.AssertFiberStatus(t, err, tt.code)
		})
	}
}

func TestSubmitEvaluationRejectsRoundTwoAuditionID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{Round: 3, HasGivenExam: true})

	r2, err := UpsertAuditionRound(db, u.ID, 2, testutil.BoolPtr(true), testutil.IntPtr(3))
	if err != nil {
		t.Fatalf("UpsertAuditionRound failed: %v", err)
	}

	req := evalRequest(nil, false, nil)
	req.AuditionRoundID = &r2.ID
	_, err = svc.SubmitEvaluation(context.Background(), req)
	testutil.AssertFiberStatus(t, err, fiber.StatusBadRequest)

	var ar rOneModel.AuditionRoundModel
	if err := db.First(&ar, "id = ?", r2.ID).Error; err != nil {
		t.Fatalf("reload audition round: %v", err)
	}
	if ar.FinalSelection == nil || !*ar.FinalSelection {
		t.Errorf("Round 2 verdict must stay intact, got %v", ar.FinalSelection)
	}
	var reviews int64
	db.Model(&rOneModel.ReviewModel{}).Where("audition_round_id = ?", r2.ID).Count(&reviews)
	if reviews != 0 {
		t.Errorf("Expected no audit review on rejected request, got %d", reviews)
	}
	if got := userRound(t, db, u.ID); got != 3 {
		t.Errorf("Expected round 3, got %d", got)
	}
}

func TestSubmitEvaluationPanelZeroMeansNoPanel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEvaluationService(db)
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{HasGivenExam: true})

	req := evalRequest(&u.ID, true, testutil.IntPtr(0))
	req.Normalize()
	if req.Panel != nil {
		t.Fatalf("Expected panel 0 normalized to nil, got %v", *req.Panel)
	}

	res, err := svc.SubmitEvaluation(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitEvaluation failed: %v", err)
	}
	if res.RoundTwo != nil {
		t.Errorf("Expected no round 2 assignment without a panel, got %+v", res.RoundTwo)
	}
	if res.Review.Panel != 0 {
		t.Errorf("Expected review panel 0, got %d", res.Review.Panel)
	}
	var rts int64
	db.Model(&rTwoModel.RoundTwoModel{}).Where("user_id = ?", u.ID).Count(&rts)
	if rts != 0 {
		t.Errorf("Expected no round_twos row, got %d", rts)
	}
}
