package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// GetEmitterCursor retrieves the last published journal cursor of a named emitter
func (s *pgStore) GetEmitterCursor(ctx context.Context, name string) (int64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", emitterCursorKey(name)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get emitter cursor: %w", err)
	}

	cursor, err := strconv.ParseInt(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse emitter cursor: %w", err)
	}

	return cursor, nil
}

// SetEmitterCursor stores the last published journal cursor of a named emitter
func (s *pgStore) SetEmitterCursor(ctx context.Context, name string, cursor int64) error {
	kv := schema.KeyValueStore{
		Key:   emitterCursorKey(name),
		Value: strconv.FormatInt(cursor, 10),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set emitter cursor: %w", err)
	}

	return nil
}

// GetEmitterCursor retrieves the last published journal cursor of a named emitter
func (s *memoryStore) GetEmitterCursor(ctx context.Context, name string) (int64, error) {
	var cursor int64
	err := s.view(func(st *memState) error {
		value, ok := st.keyValues[emitterCursorKey(name)]
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse emitter cursor: %w", err)
		}
		cursor = parsed
		return nil
	})
	return cursor, err
}

// SetEmitterCursor stores the last published journal cursor of a named emitter
func (s *memoryStore) SetEmitterCursor(ctx context.Context, name string, cursor int64) error {
	return s.view(func(st *memState) error {
		st.keyValues[emitterCursorKey(name)] = strconv.FormatInt(cursor, 10)
		return nil
	})
}
