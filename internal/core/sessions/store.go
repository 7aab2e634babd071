package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store errors
var (
	ErrSessionNotFound = errors.New("session not found")
)

const keyPrefix = "session:"

// RoleAdmin is the only role sessions are issued for. Plain users never
// get a session; they re-send their id on every request.
const RoleAdmin = "admin"

// Session is the server-side record behind an opaque client-held token.
type Session struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Store keeps sessions in Redis, keyed by an opaque uuid token.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new session store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create persists a new session and returns its token
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	token := uuid.New().String()

	data, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Get loads the session behind a token
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Destroy removes a session. Unknown tokens are not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
