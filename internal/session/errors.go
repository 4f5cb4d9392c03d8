package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBusy is returned when an operation of the same kind is already
	// waiting on a collaborator.
	ErrBusy = errors.New("operation already in progress")

	// ErrInvalidTransition is returned when an operation is not allowed
	// from the current state. The machine is left unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrDiscarded is returned by an operation whose collaborator call
	// resolved after a reset. Its result is dropped.
	ErrDiscarded = errors.New("session was reset while the request was in flight")

	// ErrNoCollaborator is wrapped by generation and evaluation errors when
	// the machine was built without a generator or evaluator.
	ErrNoCollaborator = errors.New("no LLM provider configured")
)

// ValidationError is returned when answers are submitted before every
// question of the active level has a non-blank answer. An answer made
// only of whitespace counts as missing, so recording a response for a
// question id is not enough on its own.
type ValidationError struct {
	Missing []string // question ids without an answer, in question order
	Total   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d of %d questions unanswered: %s",
		len(e.Missing), e.Total, strings.Join(e.Missing, ", "))
}

// ContentGenerationError wraps a failure to produce a level.
type ContentGenerationError struct {
	LevelNumber int
	Err         error
}

func (e *ContentGenerationError) Error() string {
	return fmt.Sprintf("generate level %d: %v", e.LevelNumber, e.Err)
}

func (e *ContentGenerationError) Unwrap() error { return e.Err }

// EvaluationError wraps a failure to evaluate a level's answers.
type EvaluationError struct {
	LevelNumber int
	Err         error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate level %d: %v", e.LevelNumber, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

func invalid(op string, from State) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, from)
}
