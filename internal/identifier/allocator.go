package identifier

import (
	"context"
	"fmt"

	"team-task-hub.com/team-task-hub/internal/constants"
	model "team-task-hub.com/team-task-hub/internal/models"
)

// Allocator mints the next human-readable task identifier. The counter
// advance must be atomic under concurrent callers; two calls never see
// the same number. Failure means no identifier was allocated and the
// caller must abort its creation.
type Allocator interface {
	Next(ctx context.Context) (string, error)
}

// Format renders prefix + separator + zero-padded number. A "none"
// separator inserts nothing; numbers wider than the padding are kept whole.
func Format(cfg *model.NomenclatureConfig, n int64) string {
	sep := cfg.Separator
	if sep == constants.SeparatorNone {
		sep = ""
	}
	return fmt.Sprintf("%s%s%0*d", cfg.Prefix, sep, cfg.Padding, n)
}
