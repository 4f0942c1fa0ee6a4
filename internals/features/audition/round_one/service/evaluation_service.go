// file: internals/features/audition/round_one/service/evaluation_service.go
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
	rOneDTO "audition_backend/internals/features/audition/round_one/dto"
	rOneModel "audition_backend/internals/features/audition/round_one/model"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	userModel "audition_backend/internals/features/users/user/model"
)

type EvaluationService struct {
	DB *gorm.DB
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{DB: db}
}

// SubmitEvaluation (round 1), satu transaksi:
//  1. buat / update audition_rounds (user, round=1)
//  2. selalu append reviews
//  3. lolos + ada panel → upsert round_twos (ASSIGNED) dan naikkan users.round via progression
func (s *EvaluationService) SubmitEvaluation(ctx context.Context, in *rOneDTO.SubmitEvaluationRequest) (*rOneDTO.EvaluationResponse, error) {
	if in == nil || in.FinalSelection == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "finalSelection is required")
	}
	if in.Remarks == "" || in.EvaluatedBy == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "remarks and evaluatedBy are required")
	}
	if in.AuditionRoundID == nil && in.UserID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "userId is required when auditionRoundId is absent")
	}

	var out rOneDTO.EvaluationResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) audition round
		ar, err := s.upsertRoundOne(tx, in)
		if err != nil {
			return err
		}

		// 2) audit trail
		review := rOneModel.ReviewModel{
			AuditionRoundID: ar.ID,
			Panel:           in.ReviewPanel(),
			Remarks:         in.Remarks,
			EvaluatedBy:     in.EvaluatedBy,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// 3) promosi ke round 2
		var user userModel.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", ar.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}

		out.AuditionRound = rOneDTO.FromAuditionRound(ar)
		out.Review = rOneDTO.FromReview(&review)
		out.UserRound = user.Round

		if !*in.FinalSelection || in.Panel == nil {
			return nil
		}

		rt, err := UpsertRoundTwoAssignment(tx, user.ID, *in.Panel)
		if err != nil {
			return err
		}
		out.RoundTwo = rt

		next, err := progression.Next(progression.Round(user.Round), progression.RoundOneAccepted)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if int(next) != user.Round {
			if err := tx.Model(&userModel.UserModel{}).
				Where("id = ?", user.ID).
				Update("round", int(next)).Error; err != nil {
				return err
			}
			log.Printf("[INFO] user %s promoted round %d → %d", user.ID, user.Round, next)
		}
		out.UserRound = int(next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// upsertRoundOne: by id kalau dikirim, selain itu ON CONFLICT (user_id, round).
func (s *EvaluationService) upsertRoundOne(tx *gorm.DB, in *rOneDTO.SubmitEvaluationRequest) (*rOneModel.AuditionRoundModel, error) {
	if in.AuditionRoundID != nil {
		var ar rOneModel.AuditionRoundModel
		if err := tx.First(&ar, "id = ?", *in.AuditionRoundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "Audition round not found")
			}
			return nil, err
		}
		if ar.Round != int(progression.RoundQuiz) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "auditionRoundId is not a round 1 audition")
		}
		if in.UserID != nil && *in.UserID != ar.UserID {
			return nil, fiber.NewError(fiber.StatusBadRequest, "userId does not match the audition round")
		}
		if err := tx.Model(&ar).Updates(map[string]any{
			"final_selection": *in.FinalSelection,
			"panel":           in.Panel,
			"updated_at":      time.Now(),
		}).Error; err != nil {
			return nil, err
		}
		ar.FinalSelection = in.FinalSelection
		ar.Panel = in.Panel
		return &ar, nil
	}

	var exists int64
	if err := tx.Model(&userModel.UserModel{}).Where("id = ?", *in.UserID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return UpsertAuditionRound(tx, *in.UserID, int(progression.RoundQuiz), in.FinalSelection, in.Panel)
}

// UpsertAuditionRound: satu baris per (user_id, round); final_selection & panel ditimpa.
// finalSelection nil = verdict dikosongkan (dipakai review round 2).
func UpsertAuditionRound(tx *gorm.DB, userID uuid.UUID, round int, finalSelection *bool, panel *int) (*rOneModel.AuditionRoundModel, error) {
	row := rOneModel.AuditionRoundModel{
		UserID:         userID,
		Round:          round,
		FinalSelection: finalSelection,
		Panel:          panel,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "round"}},
		DoUpdates: clause.Assignments(map[string]any{
			"final_selection": finalSelection,
			"panel":           panel,
			"updated_at":      time.Now(),
		}),
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	// ID di struct bisa ID baru yang tidak terpakai (kena conflict) → reload
	var ar rOneModel.AuditionRoundModel
	if err := tx.First(&ar, "user_id = ? AND round = ?", userID, round).Error; err != nil {
		return nil, err
	}
	return &ar, nil
}

// UpsertRoundTwoAssignment: round_twos per user.
// create → ASSIGNED + task kosong + addOns/tags [], update → panel & status ASSIGNED saja.
// Verdict round 2 (ACCEPTED / REJECTED) tidak pernah ditimpa.
func UpsertRoundTwoAssignment(tx *gorm.DB, userID uuid.UUID, panel int) (*rTwoModel.RoundTwoModel, error) {
	var existing rTwoModel.RoundTwoModel
	err := tx.First(&existing, "user_id = ?", userID).Error
	switch {
	case err == nil && progression.IsFinalStatus(existing.Status):
		log.Printf("[INFO] round_twos %s already %s, assignment kept", existing.ID, existing.Status)
		return &existing, nil
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	row := rTwoModel.RoundTwoModel{
		UserID:      userID,
		Panel:       &panel,
		Status:      progression.StatusAssigned,
		TaskAlloted: "",
		TaskLink:    "",
		AddOns:      datatypes.JSONSlice[string]{},
		Tags:        datatypes.JSONSlice[string]{},
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"panel":      panel,
			"status":     progression.StatusAssigned,
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	var rt rTwoModel.RoundTwoModel
	if err := tx.First(&rt, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}
