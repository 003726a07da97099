// Package grammar checks resume text for grammar problems and readability.
package grammar

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Checker reports grammar problems in a piece of text.
type Checker interface {
	Check(ctx context.Context, text string) (types.GrammarReport, error)
}

// ServiceError represents a failure of the grammar service.
type ServiceError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("grammar service error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("grammar service error: %s", msg)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
