package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// claimScript is a package-level Lua script. The Redis Go client
// automatically uses EVALSHA after the first call instead of sending
// the full script text every time.
//
// Logic:
// 1. SETNX the token key with an in-progress marker
// 2. If the key was absent → this request is the first use, return nil
// 3. If the key exists → return its value (the cached outcome, or the
//    in-progress marker when the first request has not finished yet)
var claimScript = redis.NewScript(`
	local ok = redis.call('SETNX', KEYS[1], ARGV[1])
	if ok == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[2])
		return false
	end
	return redis.call('GET', KEYS[1])
`)

const (
	// Redis key prefix for booking dedup tokens
	dedupKeyPrefix = "appointment:dedup:"

	// Marker stored while the first request with a token is still running
	inProgressMarker = "__in_progress__"

	// How long a cached outcome is replayable from Redis. The DB unique
	// constraint on dedup_token remains the durable authority after expiry.
	dedupTTL = 24 * time.Hour

	redisOpTimeout = 5 * time.Second
)

// ErrRequestInFlight is returned when a token is replayed before the
// original request has produced an outcome.
var ErrRequestInFlight = errors.New("request with this token is still in progress")

// IdempotencyService collapses retried booking requests into a single
// effect: the first claim on a token wins, later claims receive the
// cached outcome of the first.
type IdempotencyService struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewIdempotencyService(client *redis.Client, log *logrus.Logger) *IdempotencyService {
	return &IdempotencyService{
		client: client,
		log:    log,
	}
}

// Claim attempts to claim the token. It returns (nil, nil) when this
// request is the first use, the cached outcome bytes on a replay, or
// ErrRequestInFlight when the first use has not completed.
func (s *IdempotencyService) Claim(ctx context.Context, token string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	result, err := claimScript.Run(ctx, s.client,
		[]string{dedupKeyPrefix + token},
		inProgressMarker, dedupTTL.Milliseconds(),
	).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	cached, ok := result.(string)
	if !ok {
		// Script returned false: the SETNX claimed the key.
		return nil, nil
	}
	if cached == inProgressMarker {
		return nil, ErrRequestInFlight
	}
	return []byte(cached), nil
}

// StoreOutcome caches the serialized outcome for replays of the token.
func (s *IdempotencyService) StoreOutcome(ctx context.Context, token string, outcome []byte) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.client.Set(ctx, dedupKeyPrefix+token, outcome, dedupTTL).Err(); err != nil {
		s.log.Warnf("Failed to cache outcome for token %s: %+v", token, err)
		return err
	}
	return nil
}

// Release drops the claim, used when the first request failed and a
// retry with the same token should be allowed to run again.
func (s *IdempotencyService) Release(ctx context.Context, token string) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.client.Del(ctx, dedupKeyPrefix+token).Err(); err != nil {
		s.log.Warnf("Failed to release token %s (non-fatal): %+v", token, err)
	}
}
