package grader

import (
	"strings"

	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/errors"
)

type Mode int

const (
	// Public cases only, every case runs.
	ModeTrial Mode = iota + 1
	// All cases in order, stopping at the first failure.
	ModeSubmit
)

func (m Mode) String() string {
	switch m {
	case ModeTrial:
		return constants.ModeTrial
	case ModeSubmit:
		return constants.ModeSubmit
	default:
		return ""
	}
}

// ParseMode accepts "trial" (or its alias "run") and "submit", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case constants.ModeTrial, "run":
		return ModeTrial, nil
	case constants.ModeSubmit:
		return ModeSubmit, nil
	default:
		return 0, errors.ErrInvalidMode
	}
}
