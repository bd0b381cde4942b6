package repository

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"al-muallim/backend/internal/model"
)

// settingsKey is the storage key of the settings record (fixed for
// backup compatibility).
const settingsKey = "al_muallim_settings"

// SettingsRepository persists the single global settings record.
// Get never fails on an absent or corrupt record: it degrades to a
// zero-value record so every sub-field is defined.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.GlobalSettings, error)
	Save(ctx context.Context, settings *model.GlobalSettings) error
	Delete(ctx context.Context) error
}

type settingsRepo struct {
	store  StorageRepository
	logger *zap.Logger
}

// NewSettingsRepo creates a SettingsRepository over the blob store.
func NewSettingsRepo(store StorageRepository, logger *zap.Logger) SettingsRepository {
	return &settingsRepo{store: store, logger: logger}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.GlobalSettings, error) {
	raw, err := r.store.Get(ctx, settingsKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GlobalSettings{}, nil
		}
		return nil, err
	}

	var settings model.GlobalSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		r.logger.Warn("settings record is corrupt, using defaults", zap.Error(err))
		return &model.GlobalSettings{}, nil
	}
	return &settings, nil
}

func (r *settingsRepo) Save(ctx context.Context, settings *model.GlobalSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, settingsKey, raw)
}

func (r *settingsRepo) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, settingsKey)
}
