package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	SetSession(ctx context.Context, key string, token string, expiration time.Duration) error
	GetSession(ctx context.Context, key string) (string, error)
	DeleteSession(ctx context.Context, key string) error
	CacheJSON(ctx context.Context, key string, payload []byte, expiration time.Duration) error
	GetCachedJSON(ctx context.Context, key string) ([]byte, error)
}

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = redis.Nil

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) SetSession(ctx context.Context, key string, token string, expiration time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(key), token, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting session for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetSession(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, sessionKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting session for key %s: %v", key, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) DeleteSession(ctx context.Context, key string) error {
	if _, err := r.client.Del(ctx, sessionKey(key)).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) CacheJSON(ctx context.Context, key string, payload []byte, expiration time.Duration) error {
	if err := r.client.Set(ctx, cacheKey(key), payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching payload for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetCachedJSON(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading cache for key %s: %v", key, err))
		return nil, err
	}
	return val, nil
}

func sessionKey(key string) string {
	return "session:" + key
}

func cacheKey(key string) string {
	return "cache:" + key
}
