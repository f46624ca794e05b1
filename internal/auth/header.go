package auth

import (
	"net/http"
	"strings"
)

// TokenFromHeader extracts the bearer token from the request's Authorization
// header. The header must consist of exactly the scheme "Bearer" followed by
// the token.
func TokenFromHeader(r *http.Request) (string, *Error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", missingHeaderError()
	}

	parts := strings.Fields(header)
	if len(parts) == 0 || !strings.EqualFold(parts[0], "bearer") {
		return "", invalidHeaderError(`Authorization header must start with "Bearer".`, http.StatusUnauthorized)
	}
	if len(parts) == 1 {
		return "", invalidHeaderError("Token not found.", http.StatusUnauthorized)
	}
	if len(parts) > 2 {
		return "", invalidHeaderError("Authorization header must be bearer token.", http.StatusUnauthorized)
	}

	return parts[1], nil
}
