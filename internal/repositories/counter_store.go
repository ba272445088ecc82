package repositories

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/logger"
)

// CounterStore applies atomic in-place updates to denormalized aggregate
// columns. Every mutation is a single UPDATE with column arithmetic — never a
// read-modify-write round trip — so concurrent callers on the same row are
// serialized by the database.
type CounterStore struct {
	db *gorm.DB
}

// NewCounterStore creates a new CounterStore
func NewCounterStore(db *gorm.DB) *CounterStore {
	return &CounterStore{db: db}
}

// WithTx returns a CounterStore bound to the given transaction handle
func (s *CounterStore) WithTx(tx *gorm.DB) *CounterStore {
	return &CounterStore{db: tx}
}

// Increment atomically adds 1 to a counter column on the referenced entity
func (s *CounterStore) Increment(ctx context.Context, ref models.EntityRef, field string) error {
	info, err := counterTarget(ref, field)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(info.model).
		Where("id = ?", ref.ID).
		UpdateColumn(field, gorm.Expr(field+" + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Decrement atomically subtracts 1 from a counter column, flooring at zero.
// A decrement against an already-zero counter is a no-op: it signals a logic
// error upstream, which is logged, but must not corrupt state.
func (s *CounterStore) Decrement(ctx context.Context, ref models.EntityRef, field string) error {
	info, err := counterTarget(ref, field)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(info.model).
		Where("id = ? AND "+field+" > 0", ref.ID).
		UpdateColumn(field, gorm.Expr(field+" - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Either the entity is gone or the counter was already at zero.
	var count int64
	if err := s.db.WithContext(ctx).Model(info.model).Where("id = ?", ref.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	logger.Warn("decrement on zero counter",
		zap.String("entity_type", string(ref.Type)),
		zap.Uint("entity_id", ref.ID),
		zap.String("field", field))
	return nil
}

func counterTarget(ref models.EntityRef, field string) (entityInfo, error) {
	info, ok := entityTable[ref.Type]
	if !ok {
		return entityInfo{}, fmt.Errorf("unknown entity type %q", ref.Type)
	}
	// Field names are allow-listed per entity type; they are interpolated into
	// SQL and must never come from request input directly.
	if !info.counters[field] {
		return entityInfo{}, fmt.Errorf("entity type %q has no counter %q", ref.Type, field)
	}
	return info, nil
}
