// file: internals/features/audition/round_two/service/review_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"audition_backend/internals/features/audition/progression"
	rOneModel "audition_backend/internals/features/audition/round_one/model"
	rOneService "audition_backend/internals/features/audition/round_one/service"
	rTwoDTO "audition_backend/internals/features/audition/round_two/dto"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	userModel "audition_backend/internals/features/users/user/model"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// =========================================================
// SubmitReview (atomic)
// 1) upsert round_two_reviews by round_two_id
// 2) round_twos.status = REVIEWED
// 3) upsert audition_rounds (user, round=2): panel dari round_twos,
// final_selection = NULL (review tidak memutuskan lolos)
// =========================================================
func (s *ReviewService) SubmitReview(ctx context.Context, in *rTwoDTO.ReviewRequest, reviewedBy string) (*rTwoDTO.ReviewResponse, error) {
	if in == nil || in.UserID == nil || in.RoundTwoID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "userId and roundTwoId are required")
	}
	if in.Rating == nil || *in.Rating < 0 || *in.Rating > 10 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "rating must be between 0 and 10")
	}

	var out rTwoDTO.ReviewResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, *in.UserID, false)
		if err != nil {
			return err
		}
		if !progression.CanEnterRoundTwo(progression.Round(user.Round)) {
			return fiber.NewError(fiber.StatusBadRequest, "User is not in round 2")
		}
		rt, err := findRoundTwo(tx, user.ID, true)
		if err != nil {
			return err
		}
		if rt.ID != *in.RoundTwoID {
			return fiber.NewError(fiber.StatusBadRequest, "roundTwoId does not belong to this user")
		}
		if progression.IsFinalStatus(rt.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Candidate has already been evaluated for round 2")
		}

		// 1) upsert review
		forwarded := in.Forwarded != nil && *in.Forwarded
		var decidedAt *time.Time
		if in.Forwarded != nil {
			now := time.Now()
			decidedAt = &now
		}
		var by *string
		if reviewedBy != "" {
			by = &reviewedBy
		}
		row := rTwoModel.RoundTwoReviewModel{
			RoundTwoID:       rt.ID,
			Attendance:       in.Attendance,
			TaskGiven:        in.TaskGiven,
			ClubPrefer:       in.ClubPrefer,
			SubDomain:        in.SubDomain,
			HsPlace:          in.HsPlace,
			Reviews:          datatypes.JSONSlice[string](in.Reviews),
			Remarks:          in.Remarks,
			Rating:           *in.Rating,
			GD:               in.GD,
			General:          in.General,
			Forwarded:        forwarded,
			ForwardDecidedAt: decidedAt,
			ReviewedBy:       by,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "round_two_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"attendance":         row.Attendance,
				"task_given":         row.TaskGiven,
				"club_prefer":        row.ClubPrefer,
				"sub_domain":         row.SubDomain,
				"hs_place":           row.HsPlace,
				"reviews":            row.Reviews,
				"remarks":            row.Remarks,
				"rating":             row.Rating,
				"gd":                 row.GD,
				"general":            row.General,
				"forwarded":          row.Forwarded,
				"forward_decided_at": row.ForwardDecidedAt,
				"reviewed_by":        row.ReviewedBy,
				"updated_at":         time.Now(),
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		var review rTwoModel.RoundTwoReviewModel
		if err := tx.First(&review, "round_two_id = ?", rt.ID).Error; err != nil {
			return err
		}

		// 2) status
		if err := tx.Model(&rTwoModel.RoundTwoModel{}).
			Where("id = ?", rt.ID).
			Updates(map[string]any{"status": progression.StatusReviewed, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		rt.Status = progression.StatusReviewed

		// 3) audition round 2, verdict dikosongkan
		ar, err := rOneService.UpsertAuditionRound(tx, user.ID, int(progression.RoundTask), nil, rt.Panel)
		if err != nil {
			return err
		}

		out = rTwoDTO.ReviewResponse{RoundTwo: rt, Review: &review, AuditionRound: ar}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =========================================================
// Evaluate (atomic): satu-satunya jalan user.round 2 → 3
// Baris users di-lock FOR UPDATE, jadi dua request bersamaan
// untuk kandidat yang sama akan berurutan dan yang kedua kena guard.
// =========================================================
func (s *ReviewService) Evaluate(ctx context.Context, in *rTwoDTO.EvaluateRequest, evaluatedBy string) (*rTwoDTO.EvaluateResponse, error) {
	if in == nil || in.UserID == nil || in.FinalSelection == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "userId and finalSelection are required")
	}
	if evaluatedBy == "" {
		evaluatedBy = "admin"
	}

	var out rTwoDTO.EvaluateResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, *in.UserID, true)
		if err != nil {
			return err
		}
		if !progression.CanEnterRoundTwo(progression.Round(user.Round)) {
			return fiber.NewError(fiber.StatusBadRequest, "User is not in round 2")
		}
		rt, err := findRoundTwo(tx, user.ID, true)
		if err != nil {
			return err
		}

		// guard: maksimal satu verdict per round 2
		var decided int64
		if err := tx.Model(&rOneModel.AuditionRoundModel{}).
			Where("user_id = ? AND round = ? AND final_selection IS NOT NULL", user.ID, int(progression.RoundTask)).
			Count(&decided).Error; err != nil {
			return err
		}
		if decided > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Candidate has already been evaluated for round 2")
		}

		ev := progression.RoundTwoEvent(*in.FinalSelection)
		next, err := progression.Next(progression.Round(user.Round), ev)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// 1) audition round 2
		ar, err := rOneService.UpsertAuditionRound(tx, user.ID, int(progression.RoundTask), in.FinalSelection, rt.Panel)
		if err != nil {
			return err
		}

		// 2) audit trail
		panel := 0
		if rt.Panel != nil {
			panel = *rt.Panel
		}
		review := rOneModel.ReviewModel{
			AuditionRoundID: ar.ID,
			Panel:           panel,
			Remarks:         in.RemarksOrDefault(),
			EvaluatedBy:     evaluatedBy,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// 3) round
		if int(next) != user.Round {
			if err := tx.Model(&userModel.UserModel{}).
				Where("id = ?", user.ID).
				Update("round", int(next)).Error; err != nil {
				return err
			}
		}

		// 4) status
		status := progression.StatusFor(ev)
		if err := tx.Model(&rTwoModel.RoundTwoModel{}).
			Where("id = ?", rt.ID).
			Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		log.Printf("[INFO] round 2 verdict user=%s selected=%t round %d → %d by %s",
			user.ID, *in.FinalSelection, user.Round, next, evaluatedBy)

		out = rTwoDTO.EvaluateResponse{
			UserID:        user.ID,
			UserRound:     int(next),
			Status:        status,
			AuditionRound: ar,
			Review:        &review,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =========================================================
// Forward: flag terpisah dari verdict.
// Tidak menyentuh users.round maupun audition_rounds.
// =========================================================
func (s *ReviewService) Forward(ctx context.Context, in *rTwoDTO.ForwardRequest, reviewedBy string) (*rTwoDTO.ForwardResponse, error) {
	if in == nil || in.UserID == nil || in.Forwarded == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "userId and forwarded are required")
	}

	var out rTwoDTO.ForwardResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, *in.UserID, false)
		if err != nil {
			return err
		}
		rt, err := findRoundTwo(tx, user.ID, false)
		if err != nil {
			return err
		}

		var review rTwoModel.RoundTwoReviewModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&review, "round_two_id = ?", rt.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Candidate must be reviewed before forwarding")
			}
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"forwarded":          *in.Forwarded,
			"forward_decided_at": now,
			"updated_at":         now,
		}
		if in.Remarks != nil {
			updates["remarks"] = *in.Remarks
		}
		if reviewedBy != "" {
			updates["reviewed_by"] = reviewedBy
		}
		if err := tx.Model(&rTwoModel.RoundTwoReviewModel{}).
			Where("id = ?", review.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(&review, "id = ?", review.ID).Error; err != nil {
			return err
		}

		out = rTwoDTO.ForwardResponse{UserID: user.ID, Review: &review}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* ===================== helpers ===================== */

func findUser(tx *gorm.DB, id uuid.UUID, lock bool) (*userModel.UserModel, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var u userModel.UserModel
	if err := q.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return &u, nil
}

func findRoundTwo(tx *gorm.DB, userID uuid.UUID, lock bool) (*rTwoModel.RoundTwoModel, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rt rTwoModel.RoundTwoModel
	if err := q.First(&rt, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Round two record not found for this user")
		}
		return nil, err
	}
	return &rt, nil
}
