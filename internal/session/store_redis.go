package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "propertyhub/pkg/domain-errors"
)

const (
	// tokenKey is the single well-known storage key for the credential.
	tokenKey = "propertyhub:auth_token"

	// tokenEventsChannel carries change notifications to other processes.
	tokenEventsChannel = "propertyhub:auth_token:events"

	// tokenStoreTTL caps how long a token may sit in redis. Expiry is still
	// decided by the token's own claims; this is storage hygiene.
	tokenStoreTTL = 30 * 24 * time.Hour
)

// RedisTokenStore persists the token in redis. Change notifications ride a
// pub/sub channel so managers in other processes converge without polling.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore constructs a redis-backed token store.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Persist(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, tokenKey, token, tokenStoreTTL).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "persist token")
	}
	// Publish is best effort: a missed notification is repaired by the next
	// periodic recheck.
	s.client.Publish(ctx, tokenEventsChannel, "set")
	return nil
}

func (s *RedisTokenStore) Retrieve(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "retrieve token")
	}
	return val, nil
}

func (s *RedisTokenStore) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "remove token")
	}
	s.client.Publish(ctx, tokenEventsChannel, "removed")
	return nil
}

func (s *RedisTokenStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	sub := s.client.Subscribe(ctx, tokenEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "subscribe token events")
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer sub.Close() //nolint:errcheck // teardown on ctx end
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}
