package identifier

import (
	"context"
	"log"
	"strconv"

	"github.com/redis/rueidis"

	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

// RedisAllocator uses INCR as the atomic counter primitive. The persisted
// row stays the source of the format fields and receives a best-effort
// mirror of the counter after each mint.
type RedisAllocator struct {
	client rueidis.Client
	key    string
	repo   *repository.NomenclatureRepository
}

func NewRedisAllocator(client rueidis.Client, key string, repo *repository.NomenclatureRepository) *RedisAllocator {
	return &RedisAllocator{
		client: client,
		key:    key,
		repo:   repo,
	}
}

// Seed initializes the redis counter from the persisted row exactly once;
// an existing key wins so restarts never rewind the sequence.
func (a *RedisAllocator) Seed(ctx context.Context) error {
	cfg, err := a.repo.Get(ctx)
	if err != nil {
		return err
	}

	cmd := a.client.B().Set().
		Key(a.key).
		Value(strconv.FormatInt(cfg.Counter, 10)).
		Nx().
		Build()
	if err := a.client.Do(ctx, cmd).Error(); err != nil && !rueidis.IsRedisNil(err) {
		return err
	}
	return nil
}

func (a *RedisAllocator) Next(ctx context.Context) (string, error) {
	cfg, err := a.repo.Get(ctx)
	if err != nil {
		return "", err
	}

	n, err := a.client.Do(ctx, a.client.B().Incr().Key(a.key).Build()).AsInt64()
	if err != nil {
		return "", err
	}

	if err := a.repo.SetCounter(ctx, cfg.ID, n); err != nil {
		log.Printf("warning: failed to mirror counter %d to store: %v", n, err)
	}

	return Format(cfg, n), nil
}
