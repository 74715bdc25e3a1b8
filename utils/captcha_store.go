package utils

import (
	"context"
	"time"

	"github.com/mojocn/base64Captcha"
)

// redisCaptchaStore implements base64Captcha.Store on Redis so captchas
// verify correctly behind a load balancer. Every operation falls back to the
// library's in-memory store when Redis is unreachable, which keeps captchas
// working on a single instance.
type redisCaptchaStore struct {
	ttl      time.Duration
	fallback base64Captcha.Store
}

// NewCaptchaStore builds the Redis-backed store with the given TTL.
func NewCaptchaStore(ttl time.Duration) base64Captcha.Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisCaptchaStore{ttl: ttl, fallback: base64Captcha.DefaultMemStore}
}

func (s *redisCaptchaStore) key(id string) string {
	return "captcha:" + id
}

// Set stores the captcha answer with TTL.
func (s *redisCaptchaStore) Set(id string, value string) error {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, s.key(id), value, s.ttl).Err(); err == nil {
			return nil
		}
	}
	return s.fallback.Set(id, value)
}

// Get retrieves the answer, optionally clearing it.
func (s *redisCaptchaStore) Get(id string, clear bool) string {
	rc := GetRedis()
	if rc == nil {
		return s.fallback.Get(id, clear)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := s.key(id)
	if clear {
		// GETDEL keeps read-and-clear atomic (Redis >= 6.2)
		if v, err := rc.GetDel(ctx, key).Result(); err == nil {
			return v
		}
		// Older servers: same semantics via Lua
		script := `local v=redis.call('GET', KEYS[1]); if v then redis.call('DEL', KEYS[1]); end; return v`
		if res, err := rc.Eval(ctx, script, []string{key}).Result(); err == nil {
			if v, ok := res.(string); ok {
				return v
			}
			return ""
		}
		return s.fallback.Get(id, clear)
	}
	if v, err := rc.Get(ctx, key).Result(); err == nil {
		return v
	}
	return s.fallback.Get(id, clear)
}

// Verify compares the answer, optionally clearing the stored one.
func (s *redisCaptchaStore) Verify(id, answer string, clear bool) bool {
	v := s.Get(id, clear)
	return v != "" && v == answer
}
