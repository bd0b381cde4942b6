package repository

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"al-muallim/backend/internal/model"
)

// plansKey is the storage key of the whole plan collection. The name is
// fixed: backup archives from earlier releases reference it.
const plansKey = "al_muallim_plans_v5"

// PlanRepository persists the weekly plan collection as one JSON
// document. A corrupt document degrades to an empty collection (logged,
// never surfaced); genuine storage errors are returned.
type PlanRepository interface {
	List(ctx context.Context) ([]model.WeeklyPlan, error)
	// Save upserts by plan ID: replace the matching record or append.
	Save(ctx context.Context, plan *model.WeeklyPlan) error
	// ReplaceAll overwrites the whole collection (backup restore).
	ReplaceAll(ctx context.Context, plans []model.WeeklyPlan) error
	DeleteAll(ctx context.Context) error
}

type planRepo struct {
	store  StorageRepository
	logger *zap.Logger
}

// NewPlanRepo creates a PlanRepository over the blob store.
func NewPlanRepo(store StorageRepository, logger *zap.Logger) PlanRepository {
	return &planRepo{store: store, logger: logger}
}

func (r *planRepo) List(ctx context.Context) ([]model.WeeklyPlan, error) {
	raw, err := r.store.Get(ctx, plansKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.WeeklyPlan{}, nil
		}
		return nil, err
	}

	var plans []model.WeeklyPlan
	if err := json.Unmarshal(raw, &plans); err != nil {
		// Corrupt collection: treat as empty rather than block the user.
		r.logger.Warn("plan collection is corrupt, treating as empty", zap.Error(err))
		return []model.WeeklyPlan{}, nil
	}
	if plans == nil {
		plans = []model.WeeklyPlan{}
	}
	return plans, nil
}

func (r *planRepo) Save(ctx context.Context, plan *model.WeeklyPlan) error {
	plans, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range plans {
		if plans[i].ID == plan.ID {
			plans[i] = *plan
			replaced = true
			break
		}
	}
	if !replaced {
		plans = append(plans, *plan)
	}

	return r.writeAll(ctx, plans)
}

func (r *planRepo) ReplaceAll(ctx context.Context, plans []model.WeeklyPlan) error {
	if plans == nil {
		plans = []model.WeeklyPlan{}
	}
	return r.writeAll(ctx, plans)
}

func (r *planRepo) DeleteAll(ctx context.Context) error {
	return r.store.Delete(ctx, plansKey)
}

func (r *planRepo) writeAll(ctx context.Context, plans []model.WeeklyPlan) error {
	raw, err := json.Marshal(plans)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, plansKey, raw)
}
