// Package coaching turns a completed level's answers into feedback and an
// updated cognitive profile.
package coaching

import (
	"context"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/profile"
)

// Evaluator scores one completed level.
type Evaluator interface {
	// Evaluate returns coaching feedback for the responses. When the
	// feedback carries an UpdatedProfile it is a complete replacement.
	Evaluate(ctx context.Context, levelNumber int, responses []assessment.UserResponse, p profile.Profile) (*assessment.Feedback, error)
}

// Config controls the behavior of the LLMEvaluator.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}
