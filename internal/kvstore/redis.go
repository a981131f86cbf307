package kvstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis keeps the collections in a redis instance, which lets several
// app processes share one data set (still last-write-wins, see the
// package comment).
type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "kvstore: ping redis at %s", addr)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "kvstore: get %s", key)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(r.client.Set(ctx, key, value, 0).Err(), "kvstore: set %s", key)
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return errors.Wrapf(r.client.Del(ctx, key).Err(), "kvstore: remove %s", key)
}

func (r *Redis) Close() error { return r.client.Close() }
