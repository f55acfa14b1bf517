package utils

import (
	"context"
	"sync"
	"time"
)

const blacklistKeyPrefix = "jwt:blacklist:"

var (
	revokedTokens   = map[string]time.Time{}
	revokedTokensMu sync.RWMutex
)

// BlacklistToken revokes a token until its natural expiry. Redis carries the
// entry so revocation survives restarts and spans instances; without Redis a
// process-local map covers single-instance deployments.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err(); err == nil {
			return
		}
	}

	revokedTokensMu.Lock()
	revokedTokens[token] = expiresAt
	revokedTokensMu.Unlock()
}

// IsTokenBlacklisted reports whether a token was revoked before its expiry.
// A Redis error reads as not revoked rather than locking every caller out.
func IsTokenBlacklisted(token string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, blacklistKeyPrefix+token).Result(); err == nil && n > 0 {
			return true
		}
	}

	revokedTokensMu.RLock()
	expiresAt, ok := revokedTokens[token]
	revokedTokensMu.RUnlock()
	if !ok {
		return false
	}

	if time.Now().After(expiresAt) {
		revokedTokensMu.Lock()
		delete(revokedTokens, token)
		revokedTokensMu.Unlock()
		return false
	}
	return true
}
