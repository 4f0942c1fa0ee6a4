// file: internals/features/audition/round_two/service/statistics_service.go
package service

import (
	"context"

	"gorm.io/gorm"

	"audition_backend/internals/features/audition/progression"
	rTwoDTO "audition_backend/internals/features/audition/round_two/dto"
)

type StatisticsService struct {
	DB *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{DB: db}
}

type statsRow struct {
	TotalCandidates   int64
	TotalSubmitted    int64
	TotalReviewed     int64
	TotalForwarded    int64
	TotalNotForwarded int64
	TotalPending      int64
	TotalAccepted     int64
	TotalRejected     int64
}

type panelRow struct {
	Panel    int
	Total    int64
	Reviewed int64
	Accepted int64
}

// Semua angka dari satu query agregat (satu snapshot), jadi
// pending = reviewed - forwarded - notForwarded selalu konsisten.
const statsSelect = `
	COUNT(rt.id) AS total_candidates,
	COALESCE(SUM(CASE WHEN rt.task_link <> '' THEN 1 ELSE 0 END), 0) AS total_submitted,
	COALESCE(SUM(CASE WHEN rr.id IS NOT NULL THEN 1 ELSE 0 END), 0) AS total_reviewed,
	COALESCE(SUM(CASE WHEN rr.id IS NOT NULL AND rr.forwarded = ? THEN 1 ELSE 0 END), 0) AS total_forwarded,
	COALESCE(SUM(CASE WHEN rr.id IS NOT NULL AND rr.forwarded = ? AND rr.forward_decided_at IS NOT NULL THEN 1 ELSE 0 END), 0) AS total_not_forwarded,
	COALESCE(SUM(CASE WHEN rr.id IS NOT NULL AND rr.forwarded = ? AND rr.forward_decided_at IS NULL THEN 1 ELSE 0 END), 0) AS total_pending,
	COALESCE(SUM(CASE WHEN rt.status = ? THEN 1 ELSE 0 END), 0) AS total_accepted,
	COALESCE(SUM(CASE WHEN rt.status = ? THEN 1 ELSE 0 END), 0) AS total_rejected`

func (s *StatisticsService) Statistics(ctx context.Context) (*rTwoDTO.Statistics, error) {
	db := s.DB.WithContext(ctx)

	var row statsRow
	if err := db.Table("round_twos AS rt").
		Select(statsSelect, true, false, false, progression.StatusAccepted, progression.StatusRejected).
		Joins("LEFT JOIN round_two_reviews rr ON rr.round_two_id = rt.id").
		Scan(&row).Error; err != nil {
		return nil, err
	}

	panels := make([]panelRow, 0)
	if err := db.Table("round_twos AS rt").
		Select(`rt.panel AS panel,
			COUNT(rt.id) AS total,
			COALESCE(SUM(CASE WHEN rr.id IS NOT NULL THEN 1 ELSE 0 END), 0) AS reviewed,
			COALESCE(SUM(CASE WHEN rt.status = ? THEN 1 ELSE 0 END), 0) AS accepted`, progression.StatusAccepted).
		Joins("LEFT JOIN round_two_reviews rr ON rr.round_two_id = rt.id").
		Where("rt.panel IS NOT NULL").
		Group("rt.panel").
		Order("rt.panel ASC").
		Scan(&panels).Error; err != nil {
		return nil, err
	}

	out := &rTwoDTO.Statistics{
		TotalCandidates:        row.TotalCandidates,
		TotalSubmitted:         row.TotalSubmitted,
		TotalReviewed:          row.TotalReviewed,
		TotalForwarded:         row.TotalForwarded,
		TotalNotForwarded:      row.TotalNotForwarded,
		PendingForwardDecision: row.TotalPending,
		TotalAccepted:          row.TotalAccepted,
		TotalRejected:          row.TotalRejected,
		PerPanel:               make([]rTwoDTO.PanelCount, 0, len(panels)),
	}
	for _, p := range panels {
		out.PerPanel = append(out.PerPanel, rTwoDTO.PanelCount{
			Panel:    p.Panel,
			Total:    p.Total,
			Reviewed: p.Reviewed,
			Accepted: p.Accepted,
		})
	}
	return out, nil
}
