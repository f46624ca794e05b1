package auth

import (
	"errors"

	jose "github.com/go-jose/go-jose/v3"
)

// JSONWebKeySet represents a JWK Set object.
type JSONWebKeySet struct {
	Keys []jose.JSONWebKey `json:"keys"`
}

// Key returns keys by key ID. Specification states that a JWK Set "SHOULD"
// use distinct key IDs, but allows for some cases where they are not
// distinct. Hence method returns a slice of JSONWebKeys.
func (s *JSONWebKeySet) Key(kid string) []jose.JSONWebKey {
	var keys []jose.JSONWebKey
	for _, key := range s.Keys {
		if key.KeyID == kid {
			keys = append(keys, key)
		}
	}

	return keys
}

// ByUse returns the first key from the keyset with the given use.
func (s *JSONWebKeySet) ByUse(use string) (*jose.JSONWebKey, error) {
	for i, key := range s.Keys {
		if key.Use == use {
			return &s.Keys[i], nil
		}
	}

	return nil, errors.New("key not found")
}
