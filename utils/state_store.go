package utils

import (
	"context"
	"sync"
	"time"
)

const oauthStateKeyPrefix = "oauth:state:"

var (
	oauthStates   = map[string]time.Time{}
	oauthStatesMu sync.Mutex
)

// SaveState records a pending OAuth state for one use within ttl.
func SaveState(state string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, oauthStateKeyPrefix+state, "1", ttl).Err(); err == nil {
			return
		}
	}

	oauthStatesMu.Lock()
	oauthStates[state] = time.Now().Add(ttl)
	oauthStatesMu.Unlock()
}

// ConsumeState validates a state and removes it so a captured callback URL
// cannot be replayed.
func ConsumeState(state string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if v, err := rc.GetDel(ctx, oauthStateKeyPrefix+state).Result(); err == nil {
			return v != ""
		}
	}

	oauthStatesMu.Lock()
	expiresAt, ok := oauthStates[state]
	if ok {
		delete(oauthStates, state)
	}
	oauthStatesMu.Unlock()

	return ok && time.Now().Before(expiresAt)
}
