package service

import (
	"context"

	"al-muallim/backend/internal/model"
)

// ── Mock PlanRepository ──

type mockPlanRepo struct {
	plans []model.WeeklyPlan
	err   error // returned by every method when set
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{}
}

func (m *mockPlanRepo) List(_ context.Context) ([]model.WeeklyPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.WeeklyPlan, len(m.plans))
	copy(out, m.plans)
	return out, nil
}

func (m *mockPlanRepo) Save(_ context.Context, plan *model.WeeklyPlan) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.plans {
		if m.plans[i].ID == plan.ID {
			m.plans[i] = *plan
			return nil
		}
	}
	m.plans = append(m.plans, *plan)
	return nil
}

func (m *mockPlanRepo) ReplaceAll(_ context.Context, plans []model.WeeklyPlan) error {
	if m.err != nil {
		return m.err
	}
	m.plans = make([]model.WeeklyPlan, len(plans))
	copy(m.plans, plans)
	return nil
}

func (m *mockPlanRepo) DeleteAll(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.plans = nil
	return nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings *model.GlobalSettings
	err      error
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.GlobalSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return &model.GlobalSettings{}, nil
	}
	clone := *m.settings
	return &clone, nil
}

func (m *mockSettingsRepo) Save(_ context.Context, settings *model.GlobalSettings) error {
	if m.err != nil {
		return m.err
	}
	clone := *settings
	m.settings = &clone
	return nil
}

func (m *mockSettingsRepo) Delete(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.settings = nil
	return nil
}

// ── Mock SettingsNotifier ──

type mockNotifier struct {
	calls int
}

func (m *mockNotifier) SettingsUpdated(_ context.Context) {
	m.calls++
}
