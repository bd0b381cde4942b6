package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository aggregates all repositories.
type Repository struct {
	Storage  StorageRepository
	Plan     PlanRepository
	Settings SettingsRepository
}

// NewRepository wires the repository aggregate.
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	store := NewStorageRepo(db)
	return &Repository{
		Storage:  store,
		Plan:     NewPlanRepo(store, logger),
		Settings: NewSettingsRepo(store, logger),
	}
}
