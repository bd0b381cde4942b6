package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"al-muallim/backend/internal/model"
)

// StorageRepository is a keyed JSON document store, the persistence
// analog of browser localStorage. Each key holds one whole document;
// writes replace the document (last write wins).
type StorageRepository interface {
	// Get returns the raw document, or gorm.ErrRecordNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the document under key, creating or replacing it.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the document. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

type storageRepo struct {
	db *gorm.DB
}

// NewStorageRepo creates a StorageRepository backed by the
// storage_records table.
func NewStorageRepo(db *gorm.DB) StorageRepository {
	return &storageRepo{db: db}
}

func (r *storageRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var rec model.StorageRecord
	if err := r.db.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return rec.Value, nil
}

func (r *storageRepo) Set(ctx context.Context, key string, value []byte) error {
	rec := model.StorageRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (r *storageRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.StorageRecord{}, "key = ?", key).Error
}
