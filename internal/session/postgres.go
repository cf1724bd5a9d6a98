package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"heladeria-storefront/internal/domain"
)

// postgresStore persists session records so bearer tokens survive restarts.
// Runtime state (cart, resolver, workflow) is deliberately not persisted:
// live sessions are cached in memory, and a session revived from a row
// alone comes back with an empty cart.
type postgresStore struct {
	pool *pgxpool.Pool

	mu   sync.Mutex
	live map[string]*Session
}

func NewPostgres(pool *pgxpool.Pool) Store {
	return &postgresStore{
		pool: pool,
		live: make(map[string]*Session),
	}
}

func (s *postgresStore) Create(ctx context.Context, rawToken, username string, expiresAt time.Time) (*Session, error) {
	const q = `
INSERT INTO sessions (id, token, username, expires_at)
VALUES ($1, $2, $3, $4)
`
	for i := 0; i < 5; i++ {
		id, err := randomID()
		if err != nil {
			return nil, err
		}
		_, err = s.pool.Exec(ctx, q, id, rawToken, username, expiresAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			return nil, err
		}

		sess := newSession(id, rawToken, username, expiresAt)
		s.mu.Lock()
		s.live[id] = sess
		s.mu.Unlock()
		return sess, nil
	}
	return nil, errors.New("session id collision")
}

func (s *postgresStore) Get(ctx context.Context, id string) (*Session, error) {
	const q = `
SELECT id, token, username, expires_at
FROM sessions
WHERE id = $1
LIMIT 1
`
	var (
		rowID     string
		rawToken  string
		username  string
		expiresAt time.Time
	)
	if err := s.pool.QueryRow(ctx, q, id).Scan(&rowID, &rawToken, &username, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.dropLive(id)
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if time.Now().After(expiresAt) {
		_ = s.Delete(ctx, id)
		return nil, domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.live[id]; ok && sess.RawToken == rawToken {
		return sess, nil
	}
	sess := newSession(rowID, rawToken, username, expiresAt)
	s.live[id] = sess
	return sess, nil
}

func (s *postgresStore) Delete(ctx context.Context, id string) error {
	s.dropLive(id)
	cmd, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *postgresStore) dropLive(id string) {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
}
