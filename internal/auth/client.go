package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofrs/uuid/v5"
	"golang.org/x/oauth2"

	"github.com/brewcrew/coffeeshop/internal/config"
)

// Client wraps the oauth2 and oidc libraries and provides convenience
// functions for running the authorization code flow against the
// environment's identity provider.
type Client struct {
	oauth2Config *oauth2.Config
	oidcConfig   *oidc.Config
	provider     *oidc.Provider
	audience     string
}

// Must is a convenience function to make sure that the client is
// successfully initialised or it panics.
func Must(client *Client, err error) *Client {
	if err != nil {
		panic(err)
	}

	return client
}

// NewClient initialises Client from the environment configuration. The
// provider endpoints are discovered from the configured domain.
func NewClient(ctx context.Context, cfg config.Config) (*Client, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer())
	if err != nil {
		return nil, fmt.Errorf("unable to initialize client: %v", err.Error())
	}

	oidcConfig := &oidc.Config{
		ClientID: cfg.Auth.ClientID,
	}
	oauth2Config := oauth2.Config{
		ClientID:    cfg.Auth.ClientID,
		Endpoint:    provider.Endpoint(),
		RedirectURL: cfg.Auth.CallbackURL,
		Scopes:      []string{oidc.ScopeOpenID, "profile"},
	}

	return &Client{
		oauth2Config: &oauth2Config,
		oidcConfig:   oidcConfig,
		provider:     provider,
		audience:     cfg.Auth.Audience,
	}, nil
}

// AuthRequestURL returns the URL for the authorization request. The
// audience, client id and callback URL from the configuration are forwarded
// into the request unchanged.
func (c *Client) AuthRequestURL(state string, options map[string]string) (string, error) {
	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("audience", c.audience),
	}
	for key, value := range options {
		opts = append(opts, oauth2.SetAuthURLParam(key, value))
	}
	return c.oauth2Config.AuthCodeURL(state, opts...), nil
}

// Exchange exchanges the authorization code to a token.
func (c *Client) Exchange(ctx context.Context, code string, options map[string]string) (*oauth2.Token, error) {
	var opts []oauth2.AuthCodeOption
	for key, value := range options {
		opts = append(opts, oauth2.SetAuthURLParam(key, value))
	}
	oauth2Token, err := c.oauth2Config.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, errors.New("unable to exchange code for token")
	}
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("no id_token field in oauth2 token")
	}

	_, err = c.VerifyIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("unable to verify id_token")
	}
	return oauth2Token, nil
}

// VerifyIDToken verifies the signature of the ID token.
func (c *Client) VerifyIDToken(ctx context.Context, rawIDToken string) (*oidc.IDToken, error) {
	verifier := c.provider.Verifier(c.oidcConfig)
	return verifier.Verify(ctx, rawIDToken)
}

// State returns a fresh random value to carry through the authorization
// round trip.
func State() string {
	return uuid.Must(uuid.NewV4()).String()
}
