package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("db: not found")

// Client is a registered upload client. Token holds the sha256 hash of
// the credential handed out at registration, never the credential itself.
type Client struct {
	ID        string
	Name      string
	Platform  string
	Version   string
	TokenHash string
	IsActive  bool
	CreatedAt time.Time
	LastSeen  time.Time
}

// ClientStore manages upload client registrations.
type ClientStore struct {
	pool   Querier
	logger *zap.SugaredLogger
}

func NewClientStore(pool Querier, logger *zap.SugaredLogger) *ClientStore {
	return &ClientStore{pool: pool, logger: logger}
}

// Create registers a new client row.
func (s *ClientStore) Create(ctx context.Context, c Client) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO clients (id, name, platform, version, token, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
	`, c.ID, c.Name, c.Platform, c.Version, c.TokenHash)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByTokenHash resolves an active client from a hashed credential.
func (s *ClientStore) GetByTokenHash(ctx context.Context, hash string) (Client, error) {
	var c Client
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, platform, version, is_active, created_at, last_seen
		FROM clients
		WHERE token = $1 AND is_active = TRUE
	`, hash).Scan(&c.ID, &c.Name, &c.Platform, &c.Version, &c.IsActive, &c.CreatedAt, &c.LastSeen)
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, ErrNotFound
	}
	if err != nil {
		return Client{}, fmt.Errorf("lookup client: %w", err)
	}
	c.TokenHash = hash
	return c, nil
}

// TouchLastSeen bumps the activity timestamp. Failures are logged and
// swallowed; freshness tracking must not fail a request.
func (s *ClientStore) TouchLastSeen(ctx context.Context, id string) {
	if _, err := s.pool.Exec(ctx,
		`UPDATE clients SET last_seen = NOW() WHERE id = $1`, id); err != nil {
		s.logger.Warnw("failed to touch client last_seen", "client_id", id, "error", err)
	}
}
