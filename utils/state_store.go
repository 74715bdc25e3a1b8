package utils

import (
	"context"
	"sync"
	"time"
)

// OAuth state tokens are single-use CSRF guards. Redis keeps them valid
// across instances; the in-memory map below only covers a single server.
var (
	oauthStates   = map[string]time.Time{} // state -> expiry
	oauthStatesMu sync.Mutex
)

// SaveState stores an OAuth state token for the given TTL.
func SaveState(state string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = rc.Set(ctx, "oauth:state:"+state, "1", ttl).Err()
		return
	}
	oauthStatesMu.Lock()
	oauthStates[state] = time.Now().Add(ttl)
	oauthStatesMu.Unlock()
}

// ConsumeState validates a state token and removes it so it cannot be replayed.
func ConsumeState(state string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := "oauth:state:" + state
		// GETDEL keeps check-and-remove atomic (Redis >= 6.2)
		if v, err := rc.GetDel(ctx, key).Result(); err == nil {
			return v != ""
		}
		// Older servers: same semantics via Lua
		script := `local v=redis.call('GET', KEYS[1]); if v then redis.call('DEL', KEYS[1]); end; return v`
		if res, err := rc.Eval(ctx, script, []string{key}).Result(); err == nil {
			return res != nil
		}
		return false
	}
	oauthStatesMu.Lock()
	expiry, ok := oauthStates[state]
	if ok {
		delete(oauthStates, state)
	}
	oauthStatesMu.Unlock()
	return ok && time.Now().Before(expiry)
}
