package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects the identifier counter backend. Client-side
// caching is disabled: the counter is write-heavy (INCR) and a cached
// read of it would be stale by definition.
func NewRedisClient(addr string) rueidis.Client {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress:  []string{addr},
			ClientName:   "team-task-hub",
			DisableCache: true,
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return redisClient
}
