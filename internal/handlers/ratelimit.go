package handlers

import (
	"fmt"
	"net/http"
	"time"
)

// RateLimitMiddleware throttles authenticated upload clients with a
// fixed one-second window in redis. The burst allowance rides on top of
// the steady rate inside a single window. When redis is unreachable the
// limiter fails open; losing rate limiting is better than losing
// uploads.
func (h *Handler) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.rateLimitPerSecond <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		clientID := clientIDFromContext(ctx)
		if clientID == "" {
			clientID = r.RemoteAddr
		}

		key := fmt.Sprintf("ratelimit:%s:%d", clientID, time.Now().Unix())

		pipe := h.redis.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 2*time.Second)
		if _, err := pipe.Exec(ctx); err != nil {
			h.logger.Warnw("rate limiter unavailable, failing open", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if incr.Val() > int64(h.rateLimitPerSecond+h.rateLimitBurst) {
			h.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
