// Package progression memegang aturan naik-round kandidat.
// Semua perubahan users.round HARUS lewat Next, bukan if-if di controller.
package progression

import (
	"errors"
	"fmt"
)

type Round int

const (
	RoundQuiz  Round = 1 // round 1: quiz
	RoundTask  Round = 2 // round 2: task + review
	RoundFinal Round = 3 // lolos round 2 (tahap lanjut)
)

func (r Round) Valid() bool { return r >= RoundQuiz && r <= RoundFinal }

func (r Round) String() string {
	switch r {
	case RoundQuiz:
		return "ROUND_1"
	case RoundTask:
		return "ROUND_2"
	case RoundFinal:
		return "ROUND_3"
	default:
		return fmt.Sprintf("ROUND_%d", int(r))
	}
}

type Event string

const (
	RoundOneAccepted Event = "ROUND_ONE_ACCEPTED"
	RoundOneRejected Event = "ROUND_ONE_REJECTED"
	RoundTwoAccepted Event = "ROUND_TWO_ACCEPTED"
	RoundTwoRejected Event = "ROUND_TWO_REJECTED"
)

var (
	ErrInvalidRound      = errors.New("invalid round")
	ErrUnknownEvent      = errors.New("unknown progression event")
	ErrInvalidTransition = errors.New("candidate is not in the round this decision belongs to")
	ErrAlreadyDecided    = errors.New("candidate has already moved past this round")
)

// Next menghitung round baru.
//
//	1 --RoundOneAccepted--> 2
//	1 --RoundOneRejected--> 1
//	2 --RoundTwoAccepted--> 3
//	2 --RoundTwoRejected--> 2
//
// Event round 1 untuk user yang sudah di atas round 1 tidak mengubah apa-apa
// (round tidak pernah turun). Event round 2 di bawah round 2 ditolak.
func Next(current Round, ev Event) (Round, error) {
	if !current.Valid() {
		return current, ErrInvalidRound
	}
	switch ev {
	case RoundOneAccepted:
		if current == RoundQuiz {
			return RoundTask, nil
		}
		return current, nil
	case RoundOneRejected:
		return current, nil
	case RoundTwoAccepted, RoundTwoRejected:
		switch {
		case current < RoundTask:
			return current, ErrInvalidTransition
		case current > RoundTask:
			return current, ErrAlreadyDecided
		}
		if ev == RoundTwoAccepted {
			return RoundFinal, nil
		}
		return RoundTask, nil
	default:
		return current, ErrUnknownEvent
	}
}

// RoundOneEvent / RoundTwoEvent: map verdict boolean → event.
func RoundOneEvent(finalSelection bool) Event {
	if finalSelection {
		return RoundOneAccepted
	}
	return RoundOneRejected
}

func RoundTwoEvent(finalSelection bool) Event {
	if finalSelection {
		return RoundTwoAccepted
	}
	return RoundTwoRejected
}

// CanEnterRoundTwo: syarat review/submit round 2.
func CanEnterRoundTwo(current Round) bool { return current >= RoundTask }
