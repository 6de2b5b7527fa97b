package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Rasouli77/ellenovastyle/config"
	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/e"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps a token bucket per client IP and evicts idle buckets.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

func NewIPRateLimiter(rule config.RateLimitRule) *IPRateLimiter {
	l := &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rule.RPS),
		burst:   rule.Burst,
	}
	go l.cleanup()
	return l
}

func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

func (l *IPRateLimiter) cleanup() {
	for range time.Tick(3 * time.Minute) {
		l.mu.Lock()
		for ip, client := range l.clients {
			if time.Since(client.lastSeen) > 10*time.Minute {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware rejects requests over the per-IP budget with 429.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			app.Fail(c, http.StatusTooManyRequests, e.ERROR)
			c.Abort()
			return
		}
		c.Next()
	}
}
