// README: Cached bearer token for the dispatch API with single-flight refresh.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrSigningUnreachable is a transient network failure calling the token
	// endpoint; callers should retry with bounded backoff.
	ErrSigningUnreachable = errors.New("dispatch: signing endpoint unreachable")
	// ErrInvalidSigningResponse means the endpoint answered but produced no
	// usable token; also retryable by the caller.
	ErrInvalidSigningResponse = errors.New("dispatch: invalid signing response")
	// ErrExpiredAndUnrefreshable means refresh failed and no usable cached
	// token remains. This one is fatal to the caller.
	ErrExpiredAndUnrefreshable = errors.New("dispatch: token expired and unrefreshable")
)

const (
	// tokenSafetyMargin keeps a token from being handed out so close to its
	// expiry that it dies mid-flight of the request using it.
	tokenSafetyMargin = 60 * time.Second

	// defaultTokenTTL bounds the cache lifetime when the token carries no
	// parseable expiry claim.
	defaultTokenTTL = 15 * time.Minute
)

// TokenSource holds at most one cached bearer token for the dispatch API and
// refreshes it before expiry. Construct one per process and share it by
// handle; concurrent callers of a stale cache trigger exactly one refresh.
type TokenSource struct {
	endpoint   string
	signingKey string
	subject    string
	client     *http.Client
	now        func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiry    time.Time
	staleUsed bool
}

func NewTokenSource(endpoint, signingKey, subject string) *TokenSource {
	return &TokenSource{
		endpoint:   endpoint,
		signingKey: signingKey,
		subject:    subject,
		client:     &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// Token returns a bearer token valid for at least the safety margin, fetching
// a fresh one when needed. The refresh respects ctx, so a hung signing
// endpoint cannot block callers past their own deadline.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if tok, ok := ts.cached(); ok {
		return tok, nil
	}

	v, err, _ := ts.group.Do("token", func() (any, error) {
		// A flight that just finished may have refreshed the cache already.
		if tok, ok := ts.cached(); ok {
			return tok, nil
		}
		return ts.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (ts *TokenSource) cached() (string, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token != "" && ts.now().Add(tokenSafetyMargin).Before(ts.expiry) {
		return ts.token, true
	}
	return "", false
}

func (ts *TokenSource) refresh(ctx context.Context) (string, error) {
	tok, expiry, err := ts.fetch(ctx)
	if err == nil {
		ts.mu.Lock()
		ts.token = tok
		ts.expiry = expiry
		ts.staleUsed = false
		ts.mu.Unlock()
		return tok, nil
	}

	// A definitive rejection propagates to every waiter and never touches
	// the cache. A transient failure may fall back to the previous token
	// once, expired or not, before giving up for good.
	if !errors.Is(err, ErrSigningUnreachable) {
		return "", err
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token != "" && !ts.staleUsed {
		ts.staleUsed = true
		return ts.token, nil
	}
	if ts.token != "" {
		return "", fmt.Errorf("%w: %v", ErrExpiredAndUnrefreshable, err)
	}
	return "", err
}

type signingRequest struct {
	Key     string `json:"key"`
	Subject string `json:"subject"`
}

type signingResponse struct {
	Token string `json:"token"`
}

func (ts *TokenSource) fetch(ctx context.Context) (string, time.Time, error) {
	body, err := json.Marshal(signingRequest{Key: ts.signingKey, Subject: ts.subject})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("dispatch: marshal signing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("dispatch: build signing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSigningUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", time.Time{}, fmt.Errorf("%w: status %d", ErrSigningUnreachable, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSigningUnreachable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("%w: status %d", ErrInvalidSigningResponse, resp.StatusCode)
	}

	var sr signingResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSigningResponse, err)
	}
	if sr.Token == "" {
		return "", time.Time{}, fmt.Errorf("%w: no token field", ErrInvalidSigningResponse)
	}
	return sr.Token, ts.tokenExpiry(sr.Token), nil
}

// tokenExpiry decodes the token's own exp claim when it parses as a JWT; the
// token belongs to the dispatch system, so it is read unverified here. A
// malformed or missing claim falls back to a conservative fixed lifetime so
// the cache can never hold a token forever.
func (ts *TokenSource) tokenExpiry(token string) time.Time {
	fallback := ts.now().Add(defaultTokenTTL)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time
}
