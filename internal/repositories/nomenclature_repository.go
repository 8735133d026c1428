package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	model "team-task-hub.com/team-task-hub/internal/models"
)

type NomenclatureRepository struct {
	db *gorm.DB
}

// ErrCounterCAS means another caller advanced the counter first.
var ErrCounterCAS = errors.New("counter compare-and-swap failed")

func NewNomenclatureRepository(db *gorm.DB) *NomenclatureRepository {
	return &NomenclatureRepository{db: db}
}

func (r *NomenclatureRepository) Get(ctx context.Context) (*model.NomenclatureConfig, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var cfg model.NomenclatureConfig
	if err := r.db.WithContext(ctx).First(&cfg).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &cfg, nil
}

// CasCounter advances the counter from expected to next only if nobody
// else got there first. A lost race returns ErrCounterCAS so the caller
// can re-read and retry.
func (r *NomenclatureRepository) CasCounter(ctx context.Context, id string, expected, next int64) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&model.NomenclatureConfig{}).
		Where("id = ? AND counter = ?", id, expected).
		Updates(map[string]interface{}{
			"counter":    next,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCounterCAS
	}
	return nil
}

// SetCounter overwrites the persisted counter; used by the redis-backed
// allocator to mirror its authoritative value into the row.
func (r *NomenclatureRepository) SetCounter(ctx context.Context, id string, value int64) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Model(&model.NomenclatureConfig{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"counter":    value,
			"updated_at": time.Now().UTC(),
		}).Error)
}

// UpdateFormat changes prefix/separator/padding for future identifiers
// only; the counter is not touched.
func (r *NomenclatureRepository) UpdateFormat(ctx context.Context, id, prefix, separator string, padding int) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Model(&model.NomenclatureConfig{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"prefix":     prefix,
			"separator":  separator,
			"padding":    padding,
			"updated_at": time.Now().UTC(),
		}).Error)
}
