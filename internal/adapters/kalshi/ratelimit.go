package kalshi

// ratelimit.go — shared token bucket over all outbound Kalshi calls.
//
// Kalshi enforces a hard 30 RPS limit per key. The bucket holds 25 tokens
// and resets to full capacity once per second, leaving a cushion. All
// Client instances in the process share one bucket, so concurrent callers
// serialize through it; waiters are released strictly in arrival order.

import (
	"context"
	"sync"
	"time"
)

const limiterCapacity = 25

// sharedLimiter gates every outbound request in the process.
var sharedLimiter = newRateLimiter(limiterCapacity)

// rateLimiter is a FIFO token bucket. tokens and queue are only touched
// under mu, which keeps release order consistent with arrival order.
type rateLimiter struct {
	mu       sync.Mutex
	capacity int
	tokens   int
	queue    []chan struct{}
	started  bool
}

func newRateLimiter(capacity int) *rateLimiter {
	return &rateLimiter{capacity: capacity, tokens: capacity}
}

// acquire takes one token, suspending the caller in FIFO order until a
// refill cycle releases a slot. Honors ctx cancellation while waiting.
func (l *rateLimiter) acquire(ctx context.Context) error {
	l.mu.Lock()
	if !l.started {
		l.started = true
		go l.refillLoop()
	}
	if l.tokens > 0 {
		l.tokens--
		l.mu.Unlock()
		return nil
	}
	ready := make(chan struct{})
	l.queue = append(l.queue, ready)
	l.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *rateLimiter) refillLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		l.refill()
	}
}

// refill resets the bucket to full capacity and drains the wait queue
// eagerly, oldest first, until tokens or waiters run out. Queues longer
// than one capacity keep draining across successive refill cycles.
func (l *rateLimiter) refill() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = l.capacity
	for l.tokens > 0 && len(l.queue) > 0 {
		l.tokens--
		close(l.queue[0])
		l.queue = l.queue[1:]
	}
}
