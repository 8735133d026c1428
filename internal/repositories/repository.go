package repository

import (
	"context"
	"errors"
	"time"

	apperrors "team-task-hub.com/team-task-hub/internal/errors"
)

// Every store call is bounded; a hung database surfaces as a retryable
// error instead of blocking the request.
const storeTimeout = 5 * time.Second

func bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrStoreUnavailable
	}
	return err
}
