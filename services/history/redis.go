package history

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a per-product sorted set scored by the
// observation time in milliseconds. Members carry the timestamp alongside
// the price so identical prices at different times stay distinct entries.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a new Redis-backed history store.
func NewRedisStore(addr string, db int, keyPrefix string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) key(productID string) string {
	return s.keyPrefix + ":" + productID
}

// Append records a new observation for a product.
func (s *RedisStore) Append(ctx context.Context, productID string, price float64, observedAt time.Time) error {
	millis := observedAt.UnixMilli()
	member := strconv.FormatInt(millis, 10) + ":" + strconv.FormatFloat(price, 'f', -1, 64)

	return s.client.ZAdd(ctx, s.key(productID), redis.Z{
		Score:  float64(millis),
		Member: member,
	}).Err()
}

// Latest returns the most recent observation, or nil for an empty history.
func (s *RedisStore) Latest(ctx context.Context, productID string) (*Observation, error) {
	entries, err := s.client.ZRevRangeWithScores(ctx, s.key(productID), 0, 0).Result()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	obs, err := parseObservation(entries[0])
	if err != nil {
		return nil, err
	}
	return obs, nil
}

// History returns up to limit observations, newest first.
func (s *RedisStore) History(ctx context.Context, productID string, limit int) ([]Observation, error) {
	if limit <= 0 {
		return nil, nil
	}

	entries, err := s.client.ZRevRangeWithScores(ctx, s.key(productID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	observations := make([]Observation, 0, len(entries))
	for _, entry := range entries {
		obs, err := parseObservation(entry)
		if err != nil {
			return nil, err
		}
		observations = append(observations, *obs)
	}
	return observations, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// parseObservation decodes a "millis:price" sorted-set member.
func parseObservation(entry redis.Z) (*Observation, error) {
	member, ok := entry.Member.(string)
	if !ok {
		return nil, strconv.ErrSyntax
	}

	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return nil, strconv.ErrSyntax
	}

	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, err
	}
	price, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}

	return &Observation{
		Price:      price,
		ObservedAt: time.UnixMilli(millis),
	}, nil
}
