package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
)

const redisKeyPrefix = "session:"

// RedisSessionStore keeps each session under its own key and lets Redis
// expire it at ExpiresAt.
type RedisSessionStore struct {
	client redis.UniversalClient
}

func NewRedisSessionStore(client redis.UniversalClient) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

type redisSession struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *RedisSessionStore) Create(ctx context.Context, s *domain.Session) (err error) {
	defer obs.Time(ctx, "session.redis.Create")(&err)

	if s == nil || s.ID == "" {
		return errors.New("create session: id must not be empty")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		// Already expired: there is nothing worth storing.
		return nil
	}

	b, err := json.Marshal(redisSession{
		ID:        s.ID,
		Token:     s.Token,
		Username:  s.Username,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("create session: marshal: %w", err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, b, ttl).Err(); err != nil {
		return fmt.Errorf("create session: set: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "session.redis.Get")(&err)

	b, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("get session: unmarshal: %w", err)
	}

	s := &domain.Session{
		ID:        rs.ID,
		Token:     rs.Token,
		Username:  rs.Username,
		CreatedAt: rs.CreatedAt,
		ExpiresAt: rs.ExpiresAt,
	}
	if s.Expired(time.Now()) {
		return nil, nil
	}
	return s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "session.redis.Delete")(&err)

	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
