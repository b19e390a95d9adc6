package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eonite/portal-backend/internal/discounts"
	"github.com/eonite/portal-backend/pkg/redis"
)

// Session is a client's cart as held between requests.
type Session struct {
	ClientID  uuid.UUID          `json:"client_id"`
	Ledger    Ledger             `json:"ledger"`
	Discount  *discounts.Applied `json:"discount,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// refreshDiscount recomputes the applied discount against the ledger. It
// reports true when the discount had to be dropped because no line matches.
func (s *Session) refreshDiscount() (bool, error) {
	if s.Discount == nil {
		return false, nil
	}
	applied, err := discounts.Recompute(*s.Discount, s.Ledger)
	if err != nil {
		if discounts.IsNotApplicable(err) {
			s.Discount = nil
			return true, nil
		}
		return false, err
	}
	s.Discount = applied
	return false, nil
}

// SessionStore loads and saves cart sessions.
type SessionStore interface {
	Load(ctx context.Context, clientID uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, clientID uuid.UUID) error
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(clientID string) string
}

// RedisSessionStore keeps sessions as JSON documents with a sliding TTL.
type RedisSessionStore struct {
	kv  kvStore
	ttl time.Duration
}

func NewRedisSessionStore(kv kvStore, ttl time.Duration) (*RedisSessionStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSessionStore{kv: kv, ttl: ttl}, nil
}

// Load returns the stored session, or an empty one when none exists.
func (s *RedisSessionStore) Load(ctx context.Context, clientID uuid.UUID) (*Session, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(clientID.String()))
	if errors.Is(err, redis.ErrNil) {
		return &Session{ClientID: clientID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode cart session: %w", err)
	}
	session.ClientID = clientID
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode cart session: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(session.ClientID.String()), payload, s.ttl); err != nil {
		return fmt.Errorf("save cart session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, clientID uuid.UUID) error {
	return s.kv.Del(ctx, s.kv.CartKey(clientID.String()))
}
