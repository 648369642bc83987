package verifier

import (
	"github.com/mini-maxit/grader/internal/logger"
	"go.uber.org/zap"
)

// Verifier decides whether a program's output matches the expected output.
type Verifier interface {
	// CompareOutput returns true when both outputs are equal after normalization.
	CompareOutput(actual, expected string) bool
}

type verifier struct {
	logger *zap.SugaredLogger
}

func NewVerifier() Verifier {
	return &verifier{
		logger: logger.NewNamedLogger("verifier"),
	}
}

func (v *verifier) CompareOutput(actual, expected string) bool {
	normalizedActual := Normalize(actual)
	normalizedExpected := Normalize(expected)

	if normalizedActual != normalizedExpected {
		v.logger.Debugf("Output mismatch: got %q, expected %q", normalizedActual, normalizedExpected)
		return false
	}
	return true
}
