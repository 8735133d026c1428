package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

const (
	CounterBackendDatabase = "database"
	CounterBackendRedis    = "redis"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	CounterBackend         string
	CounterKey             string
	RedisAddr              string
	PipelineWorkers        int
	PipelineQueueSize      int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "teamtaskhub.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		CounterBackend:         getEnv("COUNTER_BACKEND", CounterBackendDatabase),
		CounterKey:             getEnv("COUNTER_KEY", "task_id_counter"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		PipelineWorkers:        getEnvAsInt("PIPELINE_WORKERS", 2),
		PipelineQueueSize:      getEnvAsInt("PIPELINE_QUEUE_SIZE", 256),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.CounterBackend != CounterBackendDatabase && cfg.CounterBackend != CounterBackendRedis {
		log.Fatalf("COUNTER_BACKEND must be %q or %q", CounterBackendDatabase, CounterBackendRedis)
	}
	if cfg.CounterKey == "" {
		log.Fatal("COUNTER_KEY must not be empty")
	}
	if cfg.PipelineWorkers <= 0 {
		log.Fatal("PIPELINE_WORKERS must be greater than 0")
	}
	if cfg.PipelineQueueSize <= 0 {
		log.Fatal("PIPELINE_QUEUE_SIZE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
