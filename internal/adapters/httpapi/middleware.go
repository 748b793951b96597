package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/example/barter/internal/ctxutil"
	"github.com/example/barter/internal/logger"
)

// identify puts a valid X-User-ID on the request context. Requests without
// one proceed anonymously; requireUser rejects them where identity matters.
func identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			logger.Log.Debug("rejecting malformed user header", zap.String("value", raw))
			writeError(w, http.StatusUnauthorized, "invalid "+UserIDHeader+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), userID)))
	})
}

// userHandler is a handler that runs with a known caller.
type userHandler func(w http.ResponseWriter, r *http.Request, userID int64)

func requireUser(h userHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ctxutil.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		h(w, r, userID)
	})
}

// limitSends applies the per-user send budget.
func (s *Server) limitSends(h userHandler) userHandler {
	return func(w http.ResponseWriter, r *http.Request, userID int64) {
		if !s.limiter.Allow(userID) {
			logger.Log.Debug("send rate limited", zap.Int64("user_id", userID))
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "too many messages, slow down")
			return
		}
		h(w, r, userID)
	}
}

const (
	defaultSendRPS   = 5
	defaultSendBurst = 10
)

const (
	limiterIdleTTL     = 10 * time.Minute
	limiterSweepPeriod = time.Minute
)

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// limiterPool holds one limiter per sending user. Limiters idle for longer
// than ttl are evicted by a background sweep started on first use.
type limiterPool struct {
	mu     sync.Mutex
	m      map[int64]*limiterEntry
	rps    float64
	burst  int
	ttl    time.Duration
	period time.Duration
	now    func() time.Time

	startSweep sync.Once
	stopOnce   sync.Once
	stopCh     chan struct{}
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		rps = defaultSendRPS
	}
	if burst <= 0 {
		burst = defaultSendBurst
	}
	return &limiterPool{
		m:      make(map[int64]*limiterEntry),
		rps:    rps,
		burst:  burst,
		ttl:    limiterIdleTTL,
		period: limiterSweepPeriod,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
}

func (p *limiterPool) get(userID int64) *rate.Limiter {
	p.startSweep.Do(func() { go p.sweepLoop() })

	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if e, ok := p.m[userID]; ok {
		e.lastSeen = now
		return e.l
	}
	l := rate.NewLimiter(rate.Limit(p.rps), p.burst)
	p.m[userID] = &limiterEntry{l: l, lastSeen: now}
	return l
}

func (p *limiterPool) Allow(userID int64) bool {
	return p.get(userID).Allow()
}

// sweep drops limiters unused for longer than ttl and returns how many were removed.
func (p *limiterPool) sweep() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	cutoff := p.now().Add(-p.ttl)
	removed := 0
	for id, e := range p.m {
		if e.lastSeen.Before(cutoff) {
			delete(p.m, id)
			removed++
		}
	}
	return removed
}

func (p *limiterPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

func (p *limiterPool) sweepLoop() {
	ticker := time.NewTicker(p.period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := p.sweep(); n > 0 {
				logger.Log.Debug("evicted idle send limiters", zap.Int("count", n))
			}
		case <-p.stopCh:
			return
		}
	}
}

// Shutdown stops the background sweep.
func (p *limiterPool) Shutdown() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}
