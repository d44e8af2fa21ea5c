package notifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"pantry-hub/internal/model"

	"github.com/redis/go-redis/v9"
)

// Settings keys holding the daily notification time.
const (
	HourKey   = "notification_hour"
	MinuteKey = "notification_minute"
)

// RedisScheduleStore keeps the notification time in redis so every API
// instance and the scheduler agree on it.
type RedisScheduleStore struct {
	client   *redis.Client
	defaults model.Schedule
}

// NewRedisScheduleStore creates a store returning defaults until a time is set.
func NewRedisScheduleStore(client *redis.Client, defaults model.Schedule) *RedisScheduleStore {
	return &RedisScheduleStore{client: client, defaults: defaults}
}

// Get reads the stored time. Unset keys fall back to the defaults.
func (s *RedisScheduleStore) Get(ctx context.Context) (model.Schedule, error) {
	if s.client == nil {
		return s.defaults, fmt.Errorf("redis client is nil")
	}

	vals, err := s.client.MGet(ctx, HourKey, MinuteKey).Result()
	if err != nil {
		return s.defaults, fmt.Errorf("failed to read notification schedule from redis: %w", err)
	}

	schedule := s.defaults
	if schedule.Hour, err = intValue(vals[0], s.defaults.Hour); err != nil {
		return s.defaults, fmt.Errorf("invalid %s: %w", HourKey, err)
	}
	if schedule.Minute, err = intValue(vals[1], s.defaults.Minute); err != nil {
		return s.defaults, fmt.Errorf("invalid %s: %w", MinuteKey, err)
	}
	return schedule, nil
}

// Set stores both keys atomically.
func (s *RedisScheduleStore) Set(ctx context.Context, schedule model.Schedule) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, HourKey, schedule.Hour, 0)
		pipe.Set(ctx, MinuteKey, schedule.Minute, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store notification schedule in redis: %w", err)
	}
	return nil
}

func intValue(v any, fallback int) (int, error) {
	if v == nil {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, errors.New("unexpected value type")
	}
	return strconv.Atoi(s)
}

// MemoryScheduleStore keeps the notification time in process memory. Used
// when redis is disabled.
type MemoryScheduleStore struct {
	mu       sync.RWMutex
	schedule model.Schedule
}

// NewMemoryScheduleStore creates a store starting at the given time.
func NewMemoryScheduleStore(initial model.Schedule) *MemoryScheduleStore {
	return &MemoryScheduleStore{schedule: initial}
}

// Get returns the current time.
func (s *MemoryScheduleStore) Get(ctx context.Context) (model.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule, nil
}

// Set replaces the current time.
func (s *MemoryScheduleStore) Set(ctx context.Context, schedule model.Schedule) error {
	s.mu.Lock()
	s.schedule = schedule
	s.mu.Unlock()
	return nil
}
