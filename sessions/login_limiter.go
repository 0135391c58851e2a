package sessions

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultLoginAttemptsPerMinute = 10

var (
	loginLimiters     = cache.New(10*time.Minute, 1*time.Minute)
	loginLimitersLock sync.Mutex

	// LoginAttemptsPerMinute bounds the login attempts of one username, bursts included.
	LoginAttemptsPerMinute = defaultLoginAttemptsPerMinute
)

// LoginRateLimitFromEnv reads LOGIN_RATE_LIMIT, falling back to the default on absent or bad values.
func LoginRateLimitFromEnv() int {
	raw := os.Getenv("LOGIN_RATE_LIMIT")
	if raw == "" {
		return defaultLoginAttemptsPerMinute
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logrus.Warnf("invalid LOGIN_RATE_LIMIT '%s', use %d", raw, defaultLoginAttemptsPerMinute)
		return defaultLoginAttemptsPerMinute
	}
	return n
}

func allowLogin(username string) bool {
	loginLimitersLock.Lock()
	defer loginLimitersLock.Unlock()

	var limiter *rate.Limiter
	if value, found := loginLimiters.Get(username); found {
		limiter = value.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(LoginAttemptsPerMinute)), LoginAttemptsPerMinute)
	}
	// sliding expiration, an idle limiter is full again after ten minutes anyway
	loginLimiters.Set(username, limiter, cache.DefaultExpiration)
	return limiter.Allow()
}

func resetLoginLimiters() {
	loginLimiters.Flush()
}
