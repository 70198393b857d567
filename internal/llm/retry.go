package llm

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
)

// RetryConfig controls retry behavior for model API calls.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig bounds transient-failure retries at three attempts with
// jittered exponential backoff.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 3,
	InitialWait: time.Second,
	MaxWait:     10 * time.Second,
	Multiplier:  2.0,
}

// retryDo runs fn up to MaxAttempts times, backing off between attempts.
// Only transient errors are retried; anything else returns immediately.
func retryDo(ctx context.Context, rc RetryConfig, fn func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= rc.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return "", err
		}

		if attempt < rc.MaxAttempts {
			wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt-1)))
			if wait > rc.MaxWait {
				wait = rc.MaxWait
			}
			// Full jitter keeps concurrent pipelines from hammering in lockstep.
			wait = time.Duration(rand.Int63n(int64(wait)) + int64(wait)/2)

			logrus.WithFields(logrus.Fields{
				"attempt": attempt,
				"wait":    wait,
			}).WithError(err).Debug("retrying model call")

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", lastErr
}

// IsTransient reports whether err is worth retrying: rate limits, server-side
// failures, and network timeouts. Context cancellation and malformed-request
// errors are not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
