package mcp

import (
	"errors"

	"github.com/ganot/po-manager/internal/resource"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// MapError maps resource errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch resource.ClassOf(err) {
	case resource.ClassNotFound:
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the id with the matching list_ tool"}
	case resource.ClassInput:
		if errors.Is(err, resource.ErrMalformed) {
			return &APIError{Code: "MALFORMED", Message: err.Error(), RecoveryHint: "Send a JSON object with the documented fields"}
		}
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Fix the named field and retry"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
