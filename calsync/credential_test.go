// ABOUTME: Tests for the token guard and credential expiry logic
// ABOUTME: Verifies refresh-once behavior and the authentication error taxonomy
package calsync

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeRefresher records refresh calls and returns canned results.
type fakeRefresher struct {
	calls  int
	tokens RefreshedTokens
	err    error
}

func (r *fakeRefresher) Refresh(ctx context.Context, cred *Credential) (RefreshedTokens, error) {
	r.calls++
	if r.err != nil {
		return RefreshedTokens{}, r.err
	}
	return r.tokens, nil
}

func TestEnsureRejectsMissingToken(t *testing.T) {
	refresher := &fakeRefresher{}
	guard := NewTokenGuard(refresher, fixedClock{testNow})

	if err := guard.Ensure(context.Background(), nil); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("nil credential: got %v", err)
	}
	if err := guard.Ensure(context.Background(), &Credential{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("empty access token: got %v", err)
	}
	if refresher.calls != 0 {
		t.Errorf("refresh called %d times for unauthenticated credential", refresher.calls)
	}
}

func TestEnsureValidTokenPassesThrough(t *testing.T) {
	refresher := &fakeRefresher{}
	guard := NewTokenGuard(refresher, fixedClock{testNow})

	cred := &Credential{
		AccessToken: "good-token",
		Expiry:      testNow.Add(time.Hour),
	}

	if err := guard.Ensure(context.Background(), cred); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if refresher.calls != 0 {
		t.Errorf("valid token should not refresh, called %d times", refresher.calls)
	}
	if cred.AccessToken != "good-token" {
		t.Errorf("token mutated: %q", cred.AccessToken)
	}
}

func TestEnsureRefreshesExpiredToken(t *testing.T) {
	refresher := &fakeRefresher{
		tokens: RefreshedTokens{
			AccessToken:  "fresh-token",
			RefreshToken: "rotated-refresh",
			Expiry:       testNow.Add(time.Hour),
		},
	}
	guard := NewTokenGuard(refresher, fixedClock{testNow})

	cred := &Credential{
		AccessToken:  "stale-token",
		RefreshToken: "old-refresh",
		Expiry:       testNow.Add(-time.Minute),
	}

	if err := guard.Ensure(context.Background(), cred); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if refresher.calls != 1 {
		t.Errorf("refresh calls = %d, want 1", refresher.calls)
	}
	if cred.AccessToken != "fresh-token" {
		t.Errorf("access token = %q", cred.AccessToken)
	}
	if cred.RefreshToken != "rotated-refresh" {
		t.Errorf("refresh token = %q", cred.RefreshToken)
	}

	// A second call within the same request sees the refreshed expiry and
	// does not refresh again.
	if err := guard.Ensure(context.Background(), cred); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if refresher.calls != 1 {
		t.Errorf("refreshed twice for one credential")
	}
}

func TestEnsureKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	refresher := &fakeRefresher{
		tokens: RefreshedTokens{
			AccessToken: "fresh-token",
			Expiry:      testNow.Add(time.Hour),
		},
	}
	guard := NewTokenGuard(refresher, fixedClock{testNow})

	cred := &Credential{
		AccessToken:  "stale-token",
		RefreshToken: "keep-me",
		Expiry:       testNow.Add(-time.Minute),
	}

	if err := guard.Ensure(context.Background(), cred); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if cred.RefreshToken != "keep-me" {
		t.Errorf("refresh token = %q, want the prior one retained", cred.RefreshToken)
	}
}

func TestEnsureRefreshFailureIsExpired(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("invalid_grant")}
	guard := NewTokenGuard(refresher, fixedClock{testNow})

	cred := &Credential{
		AccessToken:  "stale-token",
		RefreshToken: "revoked",
		Expiry:       testNow.Add(-time.Minute),
	}

	err := guard.Ensure(context.Background(), cred)
	if !errors.Is(err, ErrAuthenticationExpired) {
		t.Errorf("got %v, want ErrAuthenticationExpired", err)
	}
}

func TestCredentialExpired(t *testing.T) {
	cases := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"unknown expiry refreshes", time.Time{}, true},
		{"well before expiry", testNow.Add(time.Hour), false},
		{"inside the skew window", testNow.Add(2 * time.Minute), true},
		{"past expiry", testNow.Add(-time.Minute), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cred := &Credential{AccessToken: "tok", Expiry: tc.expiry}
			if got := cred.Expired(testNow); got != tc.want {
				t.Errorf("Expired = %v, want %v", got, tc.want)
			}
		})
	}
}
