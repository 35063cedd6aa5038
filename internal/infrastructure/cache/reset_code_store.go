package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"obra-connect.backend/pkg/redis"
)

const (
	resetCodePrefix     = "pwreset:code:"
	resetAttemptsPrefix = "pwreset:attempts:"
)

var (
	setResetValue = redis.Set
	getResetValue = redis.Get
	delResetValue = redis.Del
	incrAttempts  = redis.IncrWithTTL
)

// ResetCodeStore keeps password reset code digests in Redis, one per email.
// Only digests are stored; the plain code lives in the email alone.
type ResetCodeStore struct{}

// NewResetCodeStore creates a reset code store on the shared Redis client
func NewResetCodeStore() *ResetCodeStore {
	return &ResetCodeStore{}
}

func resetKeys(email string) (string, string) {
	e := strings.ToLower(strings.TrimSpace(email))
	return resetCodePrefix + e, resetAttemptsPrefix + e
}

// Save replaces any pending code for email. The failure counter is left
// alone; it expires on its own window.
func (s *ResetCodeStore) Save(ctx context.Context, email, digest string, ttl time.Duration) error {
	codeKey, _ := resetKeys(email)
	return setResetValue(ctx, codeKey, digest, ttl)
}

// Digest returns the pending digest; found is false when none is pending
func (s *ResetCodeStore) Digest(ctx context.Context, email string) (string, bool, error) {
	codeKey, _ := resetKeys(email)
	digest, err := getResetValue(ctx, codeKey)
	if redis.IsNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return digest, true, nil
}

// Failures returns the wrong guesses counted for email in the current window
func (s *ResetCodeStore) Failures(ctx context.Context, email string) (int64, error) {
	_, attemptsKey := resetKeys(email)
	raw, err := getResetValue(ctx, attemptsKey)
	if redis.IsNil(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// RegisterFailure counts a wrong guess and returns the running total
func (s *ResetCodeStore) RegisterFailure(ctx context.Context, email string, ttl time.Duration) (int64, error) {
	_, attemptsKey := resetKeys(email)
	return incrAttempts(ctx, attemptsKey, ttl)
}

// Consume deletes the pending code. Only the caller that actually removed it
// gets true, so a code cannot be redeemed twice.
func (s *ResetCodeStore) Consume(ctx context.Context, email string) (bool, error) {
	codeKey, _ := resetKeys(email)
	n, err := delResetValue(ctx, codeKey)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
