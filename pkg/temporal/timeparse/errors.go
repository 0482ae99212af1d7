package timeparse

import (
	"errors"
	"fmt"
)

// ErrInvalidExpression matches every error returned by Parse for text that no
// grammar accepts.
var ErrInvalidExpression = errors.New("invalid date/time")

// InvalidExpressionError carries the text the caller passed in, untouched.
type InvalidExpressionError struct {
	Text string
}

func invalidExpression(text string) error {
	return &InvalidExpressionError{Text: text}
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("Invalid date/time: %s", e.Text)
}

func (e *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}
