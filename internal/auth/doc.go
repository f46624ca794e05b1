// Package auth implements both sides of the identity provider integration:
// verification of incoming bearer tokens against the provider's published
// signing keys, and the relying-party client that builds authorization
// requests from the environment configuration.
package auth
