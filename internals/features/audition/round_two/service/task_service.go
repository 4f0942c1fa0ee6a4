// file: internals/features/audition/round_two/service/task_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"audition_backend/internals/features/audition/progression"
	rTwoDTO "audition_backend/internals/features/audition/round_two/dto"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	userModel "audition_backend/internals/features/users/user/model"
)

type TaskService struct {
	DB *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db}
}

// SubmitTask (kandidat): upsert round_twos milik user.
// Panel hanya diisi kalau baris baru / panel masih kosong.
func (s *TaskService) SubmitTask(ctx context.Context, userID uuid.UUID, in *rTwoDTO.SubmitTaskRequest) (*rTwoModel.RoundTwoModel, error) {
	if in == nil || in.TaskLink == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "taskLink is required")
	}

	var out rTwoModel.RoundTwoModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userID, true)
		if err != nil {
			return err
		}
		if !progression.CanEnterRoundTwo(progression.Round(user.Round)) {
			return fiber.NewError(fiber.StatusBadRequest, "You are not eligible for round 2 yet")
		}

		var rt rTwoModel.RoundTwoModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rt, "user_id = ?", user.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rt = rTwoModel.RoundTwoModel{
				UserID:   user.ID,
				Panel:    in.Panel,
				TaskLink: in.TaskLink,
				Status:   progression.StatusSubmitted,
				AddOns:   datatypes.JSONSlice[string](in.AddOns),
				Tags:     datatypes.JSONSlice[string](in.Tags),
			}
			if err := tx.Create(&rt).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if !progression.AcceptsSubmission(rt.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Task can no longer be changed, it has already been reviewed")
			}
			updates := map[string]any{
				"task_link":  in.TaskLink,
				"status":     progression.StatusSubmitted,
				"updated_at": time.Now(),
			}
			if rt.Panel == nil && in.Panel != nil {
				updates["panel"] = *in.Panel
			}
			if in.AddOns != nil {
				updates["add_ons"] = datatypes.JSONSlice[string](in.AddOns)
			}
			if in.Tags != nil {
				updates["tags"] = datatypes.JSONSlice[string](in.Tags)
			}
			if err := tx.Model(&rTwoModel.RoundTwoModel{}).Where("id = ?", rt.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.First(&out, "user_id = ?", user.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMine: round_twos milik kandidat (tanpa review internal).
func (s *TaskService) GetMine(ctx context.Context, userID uuid.UUID) (*rTwoModel.RoundTwoModel, error) {
	var rt rTwoModel.RoundTwoModel
	if err := s.DB.WithContext(ctx).First(&rt, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Round two record not found")
		}
		return nil, err
	}
	return &rt, nil
}

// UpdateTask (admin): set task_alloted, status TASK_ASSIGNED.
func (s *TaskService) UpdateTask(ctx context.Context, userID uuid.UUID, in *rTwoDTO.UpdateTaskRequest) (*rTwoModel.RoundTwoModel, error) {
	if in == nil || in.TaskAlloted == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "taskAlloted is required")
	}

	var out rTwoModel.RoundTwoModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userID, false)
		if err != nil {
			return err
		}

		var existing rTwoModel.RoundTwoModel
		err = tx.First(&existing, "user_id = ?", user.ID).Error
		if err == nil && progression.IsFinalStatus(existing.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Candidate has already been evaluated for round 2")
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		assign := map[string]any{
			"task_alloted": in.TaskAlloted,
			"status":       progression.StatusTaskAssigned,
			"updated_at":   now,
		}
		if in.Panel != nil {
			assign["panel"] = *in.Panel
		}
		row := rTwoModel.RoundTwoModel{
			UserID:      user.ID,
			Panel:       in.Panel,
			TaskAlloted: in.TaskAlloted,
			Status:      progression.StatusTaskAssigned,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(assign),
		}).Create(&row).Error; err != nil {
			return err
		}

		return tx.First(&out, "user_id = ?", user.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByPanel: round_twos di satu panel + user + review.
func (s *TaskService) ListByPanel(ctx context.Context, panel, offset, limit int) ([]rTwoDTO.PanelCandidate, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&rTwoModel.RoundTwoModel{}).Where("panel = ?", panel).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]rTwoModel.RoundTwoModel, 0)
	if err := db.Preload("Review").
		Where("panel = ?", panel).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	users := make([]userModel.UserModel, 0, len(ids))
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, 0, err
		}
	}
	byID := make(map[uuid.UUID]*userModel.UserModel, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	out := make([]rTwoDTO.PanelCandidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, rTwoDTO.PanelCandidate{RoundTwoModel: r, User: byID[r.UserID]})
	}
	return out, total, nil
}
