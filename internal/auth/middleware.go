package auth

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// TokenVerifier is the verification dependency of the middleware.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// Middleware guards HTTP routes with bearer token verification and
// permission checks.
type Middleware struct {
	verifier TokenVerifier
}

func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

type claimsContextKey struct{}

// NewContext returns a context carrying the verified claims.
func NewContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// FromContext returns the verified claims stored by the middleware, if any.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok
}

// Require verifies the request's bearer token and checks that it grants the
// given permission before passing the request on. The verified claims are
// stored in the request context.
func (m *Middleware) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, authErr := TokenFromHeader(r)
			if authErr != nil {
				WriteError(w, authErr)
				return
			}

			claims, err := m.verifier.Verify(r.Context(), token)
			if err != nil {
				var verifyErr *Error
				if !errors.As(err, &verifyErr) {
					log.WithField("error", err).Error("token verification failed")
					verifyErr = &Error{
						Code:        "verification_failed",
						Description: "internal server error",
						Status:      http.StatusInternalServerError,
					}
				}
				WriteError(w, verifyErr)
				return
			}

			if authErr := claims.Require(permission); authErr != nil {
				WriteError(w, authErr)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), claims)))
		})
	}
}
