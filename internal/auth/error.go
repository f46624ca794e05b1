package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a standardized way to communicate auth failure modes. Code is a
// stable machine-readable identifier, Description is human readable and
// Status is the HTTP status the failure maps to.
type Error struct {
	Code        string
	Description string
	Status      int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func missingHeaderError() *Error {
	return &Error{
		Code:        "authorization_header_missing",
		Description: "Authorization header is expected.",
		Status:      http.StatusUnauthorized,
	}
}

func invalidHeaderError(description string, status int) *Error {
	return &Error{
		Code:        "invalid_header",
		Description: description,
		Status:      status,
	}
}

func expiredTokenError() *Error {
	return &Error{
		Code:        "token_expired",
		Description: "Token expired.",
		Status:      http.StatusUnauthorized,
	}
}

func invalidClaimsError(description string, status int) *Error {
	return &Error{
		Code:        "invalid_claims",
		Description: description,
		Status:      status,
	}
}

func unauthorizedError() *Error {
	return &Error{
		Code:        "unauthorized",
		Description: "Permission not found.",
		Status:      http.StatusUnauthorized,
	}
}

// WriteError writes err as the standard JSON error envelope.
func WriteError(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   err.Status,
		"message": err.Description,
	})
}
