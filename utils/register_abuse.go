package utils

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/azleep/azleep-api/config"
)

// Registration throttling state. Redis is preferred so limits hold across
// instances; when it is unreachable the in-memory tables below keep the
// limits effective on this instance instead of failing open.
var (
	regMemMu        sync.Mutex
	regMemCooldown  = map[string]time.Time{} // ip -> cooldown expiry
	regMemDaily     = map[string]int{}       // ip+day -> successful registrations
	regMemFails     = map[string]int{}       // ip+hour -> failed attempts
	regMemBans      = map[string]time.Time{} // ip -> ban expiry
	regMemLastSweep time.Time
)

func regKey(parts ...string) string {
	return "reg:" + strings.Join(parts, ":")
}

// sweepRegMemLocked drops expired in-memory entries, at most once a minute.
func sweepRegMemLocked(now time.Time) {
	if now.Sub(regMemLastSweep) < time.Minute {
		return
	}
	regMemLastSweep = now
	for ip, until := range regMemCooldown {
		if now.After(until) {
			delete(regMemCooldown, ip)
		}
	}
	for ip, until := range regMemBans {
		if now.After(until) {
			delete(regMemBans, ip)
		}
	}
	day := now.Format("20060102")
	for k := range regMemDaily {
		if !strings.HasSuffix(k, day) {
			delete(regMemDaily, k)
		}
	}
	hour := now.Format("2006010215")
	for k := range regMemFails {
		if !strings.HasSuffix(k, hour) {
			delete(regMemFails, k)
		}
	}
}

// RegistrationCooldownTry enforces a short cooldown between attempts per IP.
func RegistrationCooldownTry(ip string) bool {
	cfg := config.Get()
	sec := cfg.RegisterAttemptCooldownSec
	if sec <= 0 {
		return true
	}
	window := time.Duration(sec) * time.Second

	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if ok, err := cli.SetNX(ctx, regKey("cooldown", ip), "1", window).Result(); err == nil {
		return ok
	}

	now := time.Now()
	regMemMu.Lock()
	defer regMemMu.Unlock()
	sweepRegMemLocked(now)
	if until, found := regMemCooldown[ip]; found && now.Before(until) {
		return false
	}
	regMemCooldown[ip] = now.Add(window)
	return true
}

// RegistrationDailyLimitCheck allows up to N successful registrations per day per IP.
func RegistrationDailyLimitCheck(ip string) bool {
	cfg := config.Get()
	limit := cfg.RegisterMaxPerIPPerDay
	if limit <= 0 {
		return true
	}
	day := time.Now().Format("20060102")

	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := cli.Get(ctx, regKey("succday", ip, day)).Int()
	if err == redis.Nil {
		return true
	}
	if err == nil {
		return n < limit
	}

	regMemMu.Lock()
	defer regMemMu.Unlock()
	sweepRegMemLocked(time.Now())
	return regMemDaily[ip+":"+day] < limit
}

// RegistrationDailyIncrement increments the success counter for today.
func RegistrationDailyIncrement(ip string) {
	day := time.Now().Format("20060102")

	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := regKey("succday", ip, day)
	if err := cli.Incr(ctx, key).Err(); err == nil {
		// expire at end of day
		ttl := time.Until(time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour))
		_ = cli.Expire(ctx, key, ttl).Err()
		return
	}

	regMemMu.Lock()
	regMemDaily[ip+":"+day]++
	regMemMu.Unlock()
}

// RegistrationFailRecord increments the failed-attempt count for the current
// hour and returns the new total.
func RegistrationFailRecord(ip string) int {
	hour := time.Now().Format("2006010215")

	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := regKey("failhour", ip, hour)
	if n, err := cli.Incr(ctx, key).Result(); err == nil {
		_ = cli.Expire(ctx, key, time.Hour).Err()
		return int(n)
	}

	regMemMu.Lock()
	defer regMemMu.Unlock()
	regMemFails[ip+":"+hour]++
	return regMemFails[ip+":"+hour]
}

// RegistrationIsBanned checks temporary ban status for IP.
func RegistrationIsBanned(ip string) bool {
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if exists, err := cli.Exists(ctx, regKey("ban", ip)).Result(); err == nil {
		return exists > 0
	}

	now := time.Now()
	regMemMu.Lock()
	defer regMemMu.Unlock()
	sweepRegMemLocked(now)
	until, found := regMemBans[ip]
	return found && now.Before(until)
}

// RegistrationBan sets a temporary ban for IP.
func RegistrationBan(ip string) {
	cfg := config.Get()
	minutes := cfg.RegisterTempBanMinutes
	if minutes <= 0 {
		minutes = 60
	}
	window := time.Duration(minutes) * time.Minute

	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := cli.Set(ctx, regKey("ban", ip), "1", window).Err(); err == nil {
		return
	}

	regMemMu.Lock()
	regMemBans[ip] = time.Now().Add(window)
	regMemMu.Unlock()
}
