package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// CounterType тип бейдж-счетчика.
// Это счетчики уведомлений, а не социальная статистика:
// followers/friends считаются от ребер графа (см. SocialService).
type CounterType string

const (
	CounterTypeFriendRequests CounterType = "friend_requests"
	CounterTypeNotifications  CounterType = "notifications"
)

const counterTTL = 30 * 24 * time.Hour

// incrementCounterScript атомарно двигает счетчик, не давая уйти ниже нуля
var incrementCounterScript = redis.NewScript(`
	local key = KEYS[1]
	local delta = tonumber(ARGV[1])
	local ttl = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key)) or 0
	local new_count = math.max(0, current + delta)

	redis.call('SET', key, new_count)
	redis.call('EXPIRE', key, ttl)
	return new_count
`)

// CounterService управляет бейдж-счетчиками пользователей в Redis
type CounterService struct {
	redisClient *redis.Client
}

var (
	counterServiceInstance *CounterService
	counterServiceOnce     sync.Once
)

// GetCounterService возвращает singleton инстанс CounterService
func GetCounterService() *CounterService {
	counterServiceOnce.Do(func() {
		counterServiceInstance = NewCounterService(RedisClient)
	})
	return counterServiceInstance
}

func NewCounterService(redisClient *redis.Client) *CounterService {
	return &CounterService{redisClient: redisClient}
}

func (cs *CounterService) key(userID int64, counterType CounterType) string {
	return fmt.Sprintf("counter:%s:%d", counterType, userID)
}

// Increment атомарно сдвигает счетчик на delta и возвращает новое значение
func (cs *CounterService) Increment(ctx context.Context, userID int64, counterType CounterType, delta int64) (int64, error) {
	if cs.redisClient == nil {
		return 0, fmt.Errorf("redis not available")
	}
	result, err := incrementCounterScript.Run(
		ctx, cs.redisClient,
		[]string{cs.key(userID, counterType)},
		delta, int64(counterTTL.Seconds()),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return result, nil
}

// Get возвращает текущее значение счетчика (0, если ключа нет)
func (cs *CounterService) Get(ctx context.Context, userID int64, counterType CounterType) (int64, error) {
	if cs.redisClient == nil {
		return 0, fmt.Errorf("redis not available")
	}
	val, err := cs.redisClient.Get(ctx, cs.key(userID, counterType)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get counter: %w", err)
	}
	return val, nil
}

// Reset сбрасывает счетчик (например, когда пользователь открыл список заявок)
func (cs *CounterService) Reset(ctx context.Context, userID int64, counterType CounterType) error {
	if cs.redisClient == nil {
		return fmt.Errorf("redis not available")
	}
	return cs.redisClient.Del(ctx, cs.key(userID, counterType)).Err()
}
