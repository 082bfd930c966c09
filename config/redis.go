package config

import (
	"context"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

var RDB *redis.Client

// InitRedis menyiapkan klien Redis yang dipakai asynq untuk antrean notifikasi.
func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Redis connected")
}

// AsynqRedisOpt mengembalikan opsi koneksi Redis untuk klien dan worker asynq.
func AsynqRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}
}
