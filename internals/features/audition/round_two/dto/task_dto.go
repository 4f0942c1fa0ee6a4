// file: internals/features/audition/round_two/dto/task_dto.go
package dto

import (
	"strings"

	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	userModel "audition_backend/internals/features/users/user/model"
)

// POST /api/round2 (kandidat). Panel hanya dipakai di submit pertama.
type SubmitTaskRequest struct {
	TaskLink string   `json:"taskLink" validate:"required,url,max=2048"`
	Panel    *int     `json:"panel" validate:"omitempty,min=1,max=6"`
	AddOns   []string `json:"addOns" validate:"omitempty,dive,max=2048"`
	Tags     []string `json:"tags" validate:"omitempty,dive,max=64"`
}

func (r *SubmitTaskRequest) Normalize() {
	r.TaskLink = strings.TrimSpace(r.TaskLink)
	r.AddOns = compact(r.AddOns)
	r.Tags = compact(r.Tags)
}

// PUT /api/admin/r2/task/:userId
type UpdateTaskRequest struct {
	TaskAlloted string `json:"taskAlloted" validate:"required"`
	Panel       *int   `json:"panel" validate:"omitempty,min=1,max=6"`
}

func (r *UpdateTaskRequest) Normalize() {
	r.TaskAlloted = strings.TrimSpace(r.TaskAlloted)
}

// Baris list per panel (admin).
type PanelCandidate struct {
	rTwoModel.RoundTwoModel
	User *userModel.UserModel `json:"user,omitempty" gorm:"-"`
}

// compact: trim + buang kosong/duplikat. nil tetap nil (field tidak dikirim).
func compact(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
