package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/andesviajes/storefront/internal/domain"
)

// RedisStore keeps each user's customizations as one JSON map under a
// single key. Entries have no TTL; stale customizations survive until
// something deletes them explicitly.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, userID string, productID int64, tc domain.TripCustomization) error {
	trips, err := s.readAll(ctx, userID)
	if err != nil {
		return err
	}
	trips[strconv.FormatInt(productID, 10)] = tc
	return s.writeAll(ctx, userID, trips)
}

func (s *RedisStore) Get(ctx context.Context, userID string, productID int64) (domain.TripCustomization, bool, error) {
	trips, err := s.readAll(ctx, userID)
	if err != nil {
		return domain.TripCustomization{}, false, err
	}
	tc, ok := trips[strconv.FormatInt(productID, 10)]
	return tc, ok, nil
}

func (s *RedisStore) All(ctx context.Context, userID string) (map[int64]domain.TripCustomization, error) {
	trips, err := s.readAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]domain.TripCustomization, len(trips))
	for k, tc := range trips {
		productID, errParse := strconv.ParseInt(k, 10, 64)
		if errParse != nil {
			return nil, fmt.Errorf("corrupt trip key %q: %w", k, errParse)
		}
		out[productID] = tc
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string, productID int64) error {
	trips, err := s.readAll(ctx, userID)
	if err != nil {
		return err
	}
	key := strconv.FormatInt(productID, 10)
	if _, ok := trips[key]; !ok {
		return nil
	}
	delete(trips, key)
	return s.writeAll(ctx, userID, trips)
}

func (s *RedisStore) readAll(ctx context.Context, userID string) (map[string]domain.TripCustomization, error) {
	data, err := s.client.Get(ctx, storeKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]domain.TripCustomization{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var trips map[string]domain.TripCustomization
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("unmarshal trips failed: %w", err)
	}
	if trips == nil {
		trips = map[string]domain.TripCustomization{}
	}
	return trips, nil
}

func (s *RedisStore) writeAll(ctx context.Context, userID string, trips map[string]domain.TripCustomization) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("marshal trips failed: %w", err)
	}
	if err := s.client.Set(ctx, storeKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func storeKey(userID string) string {
	return fmt.Sprintf("customtrips:%s", userID)
}
