package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v3/jwt"
)

// Claims is the verified subset of the token payload the service cares
// about. A nil Permissions slice means the token carried no permissions
// claim at all.
type Claims struct {
	Subject     string
	Permissions []string
}

// Require checks that the claims grant the given permission.
func (c *Claims) Require(permission string) *Error {
	if c.Permissions == nil {
		return invalidClaimsError("Permissions not included in JWT.", http.StatusBadRequest)
	}
	for _, granted := range c.Permissions {
		if granted == permission {
			return nil
		}
	}
	return unauthorizedError()
}

// Verifier validates bearer tokens against the provider's signing keys and
// the expected audience and issuer.
type Verifier struct {
	keys     KeySource
	issuer   string
	audience string
	now      func() time.Time
}

// NewVerifier returns a verifier that accepts tokens signed by a key from
// keys, issued by issuer for audience.
func NewVerifier(keys KeySource, issuer, audience string) *Verifier {
	return &Verifier{
		keys:     keys,
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

// Verify checks the token's signature and claims and returns the verified
// claims. Failures that map to the auth error taxonomy are returned as
// *Error; anything else is an internal failure.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	token, err := jwt.ParseSigned(rawToken)
	if err != nil {
		return nil, invalidHeaderError("Unable to parse authentication token.", http.StatusBadRequest)
	}

	var kid string
	for _, header := range token.Headers {
		if header.KeyID != "" {
			kid = header.KeyID
			break
		}
	}
	if kid == "" {
		return nil, invalidHeaderError("Authorization malformed.", http.StatusUnauthorized)
	}

	keyset, err := v.keys.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching signing keys: %w", err)
	}

	keys := keyset.Key(kid)
	if len(keys) == 0 {
		return nil, invalidHeaderError("Unable to find the appropriate key.", http.StatusBadRequest)
	}

	var std jwt.Claims
	var custom struct {
		Permissions []string `json:"permissions"`
	}
	if err := token.Claims(keys[0], &std, &custom); err != nil {
		return nil, invalidHeaderError("Unable to parse authentication token.", http.StatusBadRequest)
	}

	err = std.Validate(jwt.Expected{
		Issuer:   v.issuer,
		Audience: jwt.Audience{v.audience},
		Time:     v.now(),
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrExpired):
		return nil, expiredTokenError()
	default:
		return nil, invalidClaimsError("Incorrect claims. Please, check the audience and issuer.", http.StatusUnauthorized)
	}

	return &Claims{Subject: std.Subject, Permissions: custom.Permissions}, nil
}
