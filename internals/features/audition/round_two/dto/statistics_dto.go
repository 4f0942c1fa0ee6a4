package dto

// GET /api/admin/r2/statistics
// Invariant: PendingForwardDecision = TotalReviewed - TotalForwarded - TotalNotForwarded.
type Statistics struct {
	TotalCandidates        int64        `json:"totalCandidates"`
	TotalSubmitted         int64        `json:"totalSubmitted"`
	TotalReviewed          int64        `json:"totalReviewed"`
	TotalForwarded         int64        `json:"totalForwarded"`
	TotalNotForwarded      int64        `json:"totalNotForwarded"`
	PendingForwardDecision int64        `json:"pendingForwardDecision"`
	TotalAccepted          int64        `json:"totalAccepted"`
	TotalRejected          int64        `json:"totalRejected"`
	PerPanel               []PanelCount `json:"perPanel"`
}

type PanelCount struct {
	Panel    int   `json:"panel"`
	Total    int64 `json:"total"`
	Reviewed int64 `json:"reviewed"`
	Accepted int64 `json:"accepted"`
}
