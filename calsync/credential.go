// ABOUTME: Credential value type and token guard for calendar access
// ABOUTME: Validates bearer tokens and performs a single transactional refresh
package calsync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/oauth2"
)

// Authentication failure taxonomy. Both are fatal for a sync run.
var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrAuthenticationExpired = errors.New("authentication expired")
)

// expirySkew refreshes tokens slightly before their reported expiry, so a
// token that expires mid-run is never handed to the calendar API.
const expirySkew = 5 * time.Minute

// Credential holds a user's bearer tokens for the calendar API. The guard
// mutates it in place on refresh; callers own it for the duration of a sync
// and must not share one instance across concurrent runs.
type Credential struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Expired reports whether the access token needs a refresh before use.
// An unknown expiry counts as expired: refreshing is cheaper than a
// mid-fetch 401.
func (c *Credential) Expired(now time.Time) bool {
	if c.Expiry.IsZero() {
		return true
	}
	return !now.Before(c.Expiry.Add(-expirySkew))
}

// Token converts the credential to its oauth2 representation.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// CredentialFromToken builds a Credential from a stored oauth2 token.
func CredentialFromToken(token *oauth2.Token) *Credential {
	return &Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
}

// RefreshedTokens is what a successful refresh yields. RefreshToken is empty
// when the provider did not rotate it.
type RefreshedTokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Refresher exchanges a refresh token for fresh access tokens.
type Refresher interface {
	Refresh(ctx context.Context, cred *Credential) (RefreshedTokens, error)
}

// oauthRefresher refreshes through the oauth2 token endpoint.
type oauthRefresher struct {
	config *oauth2.Config
}

func NewOAuthRefresher(config *oauth2.Config) Refresher {
	return &oauthRefresher{config: config}
}

func (r *oauthRefresher) Refresh(ctx context.Context, cred *Credential) (RefreshedTokens, error) {
	// A token with only the refresh token forces TokenSource to hit the
	// token endpoint instead of returning the cached access token.
	source := r.config.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return RefreshedTokens{}, err
	}
	return RefreshedTokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

// TokenGuard validates a credential before any remote call, refreshing it at
// most once per invocation.
type TokenGuard struct {
	refresher Refresher
	clock     Clock
}

func NewTokenGuard(refresher Refresher, clock Clock) *TokenGuard {
	if clock == nil {
		clock = SystemClock()
	}
	return &TokenGuard{refresher: refresher, clock: clock}
}

// Ensure leaves cred holding a usable access token or returns a typed
// authentication error. On refresh the credential is updated in place so a
// second call within the same request does not refresh again.
func (g *TokenGuard) Ensure(ctx context.Context, cred *Credential) error {
	if cred == nil || cred.AccessToken == "" {
		return ErrNotAuthenticated
	}

	if !cred.Expired(g.clock.Now()) {
		return nil
	}

	refreshed, err := g.refresher.Refresh(ctx, cred)
	if err != nil {
		log.Printf("Token refresh failed: %v", err)
		return fmt.Errorf("%w: %v", ErrAuthenticationExpired, err)
	}

	cred.AccessToken = refreshed.AccessToken
	// Providers often omit the refresh token on refresh; keep the prior one.
	if refreshed.RefreshToken != "" {
		cred.RefreshToken = refreshed.RefreshToken
	}
	cred.Expiry = refreshed.Expiry

	return nil
}
