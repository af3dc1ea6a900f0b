package utils

import (
	"context"
	"sync"
	"time"
)

// TokenBlacklist remembers revoked tokens until they would have expired.
type TokenBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{tokens: make(map[string]time.Time)}
}

func (b *TokenBlacklist) Add(token string, until time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = until
}

func (b *TokenBlacklist) IsBlacklisted(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	until, ok := b.tokens[token]
	return ok && time.Now().Before(until)
}

// Cleanup drops entries whose expiry has passed and returns how many were
// removed.
func (b *TokenBlacklist) Cleanup(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for token, until := range b.tokens {
		if now.After(until) {
			delete(b.tokens, token)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (b *TokenBlacklist) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := b.Cleanup(now); n > 0 {
				InfoLogger.Debugf("removed %d expired tokens from blacklist", n)
			}
		}
	}
}
