package cache

import (
	"context"
	"os"
	"sync"

	"attendly.io/infrastructure/logger"
	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	once   sync.Once
)

func ConnectToCache() {
	once.Do(connectRedis)
}

func connectRedis() {
	opt := &redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
		PoolSize: 10,
	}
	Client = redis.NewClient(opt)
	if err := Client.Ping(context.Background()).Err(); err != nil {
		logger.Warning("redis ping failed", logger.LoggerOptions{Key: "error", Data: err})
		return
	}
	logger.Info("connected to redis successfully")
}

func GetInstance() *redis.Client {
	ConnectToCache()
	return Client
}
