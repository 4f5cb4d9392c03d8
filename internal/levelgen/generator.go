// Package levelgen produces assessment levels from an LLM provider.
package levelgen

import (
	"context"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/profile"
)

// Generator produces the content of one level.
type Generator interface {
	// Generate produces level levelNumber, tuned to the current profile.
	// The returned level has passed structural validation.
	Generate(ctx context.Context, levelNumber int, p profile.Profile) (*assessment.Level, error)
}
