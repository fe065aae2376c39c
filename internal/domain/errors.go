package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRoundNotFound is returned when a round ID is unknown to the store.
	ErrRoundNotFound = errors.New("round not found")
	// ErrRoundOver is returned when submitting to a won or lost round.
	ErrRoundOver = errors.New("round is over")
	// ErrEmptyExpression is returned for blank submissions.
	ErrEmptyExpression = errors.New("expression is empty")
	// ErrInvalidDigits is returned when a digit set has the wrong size or range.
	ErrInvalidDigits = errors.New("invalid digits")
)

// UsageError reports that a submission does not use the round's digits exactly once.
type UsageError struct {
	Expected Digits
	Used     Digits
}

func (e *UsageError) Error() string {
	used := "none"
	if len(e.Used) > 0 {
		used = e.Used.String()
	}
	return fmt.Sprintf("Must use numbers %s exactly once. You used: %s.", e.Expected, used)
}

// EvaluationError reports that a submission could not be evaluated.
type EvaluationError struct {
	Msg string
	Err error
}

func (e *EvaluationError) Error() string { return e.Msg }

func (e *EvaluationError) Unwrap() error { return e.Err }
