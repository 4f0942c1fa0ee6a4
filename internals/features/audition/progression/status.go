package progression

import "strings"

// Status RoundTwo (label bebas di DB, nilai yang dipakai server di bawah).
const (
	StatusAssigned     = "ASSIGNED"
	StatusTaskAssigned = "TASK_ASSIGNED"
	StatusSubmitted    = "SUBMITTED"
	StatusReviewed     = "REVIEWED"
	StatusAccepted     = "ACCEPTED"
	StatusRejected     = "REJECTED"
)

// StatusFor: status RoundTwo setelah evaluasi round 2.
func StatusFor(ev Event) string {
	switch ev {
	case RoundTwoAccepted:
		return StatusAccepted
	case RoundTwoRejected:
		return StatusRejected
	default:
		return ""
	}
}

// IsFinalStatus: kandidat sudah diputuskan, task tidak boleh diubah lagi.
func IsFinalStatus(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// AcceptsSubmission: kandidat masih boleh kirim/ubah task link.
func AcceptsSubmission(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "", StatusAssigned, StatusTaskAssigned, StatusSubmitted:
		return true
	}
	return false
}
