package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dialog:"

// RedisRegistry хранит состояния в Redis, чтобы диалог переживал перезапуск процесса.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry создаёт реестр поверх Redis; ttl == 0: ключи без истечения.
func NewRedisRegistry(addr, password string, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func redisKey(chatID int64) string {
	return redisKeyPrefix + strconv.FormatInt(chatID, 10)
}

// Ping проверяет доступность Redis.
func (r *RedisRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRegistry) Load(ctx context.Context, chatID int64) (*State, error) {
	raw, err := r.client.Get(ctx, redisKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load dialog: %w", err)
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode dialog: %w", err)
	}
	if st.Fields == nil {
		st.Fields = map[string]string{}
	}
	return &st, nil
}

func (r *RedisRegistry) Save(ctx context.Context, chatID int64, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode dialog: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(chatID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save dialog: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Clear(ctx context.Context, chatID int64) error {
	if err := r.client.Del(ctx, redisKey(chatID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("clear dialog: %w", err)
	}
	return nil
}

// Close закрывает подключение к Redis.
func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
