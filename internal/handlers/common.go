package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/versuslog/stats-api/internal/db"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// hashToken creates a SHA256 hash of a token for secure storage lookup
func hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// clientIDFromContext returns the authenticated client id, if any.
func clientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres": h.pg.Ping(ctx) == nil,
		"redis":    h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	payload := map[string]interface{}{
		"ready":       allHealthy,
		"checks":      checks,
		"queue_depth": h.pool.QueueDepth(),
	}
	// Informational only; a count failure never flips readiness on its own.
	if h.matches != nil {
		if n, err := h.matches.CountSince(ctx, time.Now().Add(-time.Hour)); err == nil {
			payload["matches_last_hour"] = n
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, payload)
}

// ClientAuthMiddleware validates upload client tokens
func (h *Handler) ClientAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Client-Token")
		if token == "" {
			token = r.Header.Get("Authorization")
			token = strings.TrimPrefix(token, "Bearer ")
		}

		if token == "" {
			h.errorResponse(w, http.StatusUnauthorized, "Missing client token")
			return
		}

		ctx := r.Context()
		client, err := h.clients.GetByTokenHash(ctx, hashToken(token))
		if errors.Is(err, db.ErrNotFound) {
			h.errorResponse(w, http.StatusUnauthorized, "Invalid client token")
			return
		}
		if err != nil {
			h.logger.Errorw("client auth lookup failed", "error", err)
			h.errorResponse(w, http.StatusServiceUnavailable, "Auth backend unavailable")
			return
		}

		h.clients.TouchLastSeen(ctx, client.ID)

		ctx = context.WithValue(ctx, clientIDKey, client.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
