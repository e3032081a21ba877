// Package jitter randomizes backoff intervals so that parallel retries do not
// line up against the same remote service.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter is the default jitter factor (50%).
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMu     sync.Mutex
)

// Duration returns d extended by a random amount in [0, d*factor].
func Duration(d time.Duration, factor float64) time.Duration {
	randMu.Lock()
	j := globalRand.Float64() * factor * float64(d)
	randMu.Unlock()
	return d + time.Duration(j)
}

// ExponentialBackoff doubles base attempt times, caps it at max and applies
// jitter. attempt is zero-based.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}
	return Duration(backoff, factor)
}
