package levelgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/iq360/internal/assessment"
)

// InvalidLevelError describes why a generated level was rejected.
type InvalidLevelError struct {
	Message string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid level: %s", e.Message)
}

// validateLevel checks the structural rules every level must satisfy:
// a title, at least one question, and non-empty unique question ids
// with non-empty text.
func validateLevel(l *assessment.Level) error {
	if strings.TrimSpace(l.Title) == "" {
		return &InvalidLevelError{Message: "title is empty"}
	}
	if len(l.Questions) == 0 {
		return &InvalidLevelError{Message: "level has no questions"}
	}
	seen := make(map[string]bool, len(l.Questions))
	for i, q := range l.Questions {
		if q.ID == "" {
			return &InvalidLevelError{Message: fmt.Sprintf("question %d has no id", i+1)}
		}
		if seen[q.ID] {
			return &InvalidLevelError{Message: fmt.Sprintf("duplicate question id %q", q.ID)}
		}
		seen[q.ID] = true
		if strings.TrimSpace(q.Text) == "" {
			return &InvalidLevelError{Message: fmt.Sprintf("question %q has no text", q.ID)}
		}
	}
	return nil
}
