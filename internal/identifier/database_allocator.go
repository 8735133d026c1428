package identifier

import (
	"context"
	"errors"

	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

const maxCasRetries = 5

// DatabaseAllocator advances the persisted counter with an optimistic
// compare-and-swap and retries on contention.
type DatabaseAllocator struct {
	repo *repository.NomenclatureRepository
}

func NewDatabaseAllocator(repo *repository.NomenclatureRepository) *DatabaseAllocator {
	return &DatabaseAllocator{repo: repo}
}

func (a *DatabaseAllocator) Next(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCasRetries; attempt++ {
		cfg, err := a.repo.Get(ctx)
		if err != nil {
			return "", err
		}

		next := cfg.Counter + 1
		err = a.repo.CasCounter(ctx, cfg.ID, cfg.Counter, next)
		if errors.Is(err, repository.ErrCounterCAS) {
			continue
		}
		if err != nil {
			return "", err
		}

		return Format(cfg, next), nil
	}

	return "", apperrors.ErrCounterConflict
}
