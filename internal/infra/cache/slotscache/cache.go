// Package slotscache кэширует рассчитанные слоты записи в Redis.
// Кэш необязателен: nil-кэш безопасен и превращает все операции в no-op.
package slotscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// ErrCacheMiss слоты для ключа отсутствуют в кэше
var ErrCacheMiss = errors.New("slots cache miss")

// Cache кэш доступных слотов по услуге и дате
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает новый экземпляр кэша слотов
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get получает закэшированные слоты для услуги на дату
func (c *Cache) Get(ctx context.Context, serviceID int64, date time.Time) ([]domain.TimeRange, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := c.client.Get(ctx, c.key(serviceID, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("slots cache get: %w", err)
	}

	var slots []domain.TimeRange
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("slots cache unmarshal: %w", err)
	}
	return slots, nil
}

// Set сохраняет слоты для услуги на дату
func (c *Cache) Set(ctx context.Context, serviceID int64, date time.Time, slots []domain.TimeRange) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slots cache marshal: %w", err)
	}

	if err := c.client.Set(ctx, c.key(serviceID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("slots cache set: %w", err)
	}
	return nil
}

// InvalidateDate сбрасывает все закэшированные слоты на дату.
// Вызывается при любом изменении расписания или записей этого дня.
func (c *Cache) InvalidateDate(ctx context.Context, date time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	pattern := fmt.Sprintf("slots:*:%s", date.Format(domain.DateFormat))
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("slots cache invalidate: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("slots cache scan: %w", err)
	}
	return nil
}

// InvalidateAll сбрасывает все закэшированные слоты по всем услугам и датам.
// Вызывается при смене настроек студии: шаг сетки меняет слоты каждого дня.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, "slots:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("slots cache invalidate all: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("slots cache scan: %w", err)
	}
	return nil
}

func (c *Cache) key(serviceID int64, date time.Time) string {
	return fmt.Sprintf("slots:%d:%s", serviceID, date.Format(domain.DateFormat))
}
