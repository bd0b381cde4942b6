package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"al-muallim/backend/internal/constants"
	"al-muallim/backend/internal/dto"
	"al-muallim/backend/internal/model"
	"al-muallim/backend/internal/repository"
)

// ── plan module business errors ──

var (
	ErrUnknownWeek = errors.New("week number is outside the academic calendar")
)

// PlanService is the weekly plan business interface.
//
// A plan is materialized lazily: GetByKey never reports "not found".
// When no record exists for a (subject, grade, week) triple, a blank
// plan is synthesized in memory and only persisted on an explicit Save.
type PlanService interface {
	// List returns all persisted plans.
	List(ctx context.Context) ([]model.WeeklyPlan, error)
	// Save upserts a plan; saving the same triple twice keeps one record.
	Save(ctx context.Context, req *dto.SavePlanRequest) (*model.WeeklyPlan, error)
	// GetByKey returns the persisted plan or a synthesized blank one.
	GetByKey(ctx context.Context, subject, grade string, week int) (*model.WeeklyPlan, error)
	// FullWeekSet returns one plan per catalog subject for a grade/week,
	// in catalog order, synthesizing the missing ones.
	FullWeekSet(ctx context.Context, grade string, week int) ([]model.WeeklyPlan, error)
	// SubjectAnalytics computes completion statistics for one subject.
	SubjectAnalytics(ctx context.Context, subject string) (*dto.SubjectAnalyticsResponse, error)
}

type planService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewPlanService creates a PlanService instance.
func NewPlanService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) PlanService {
	return &planService{repo: repo, settings: settings, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *planService) List(ctx context.Context) ([]model.WeeklyPlan, error) {
	plans, err := s.repo.Plan.List(ctx)
	if err != nil {
		s.logger.Error("list plans failed", zap.Error(err))
		return nil, err
	}
	return plans, nil
}

// ────────────────────── Save ──────────────────────

func (s *planService) Save(ctx context.Context, req *dto.SavePlanRequest) (*model.WeeklyPlan, error) {
	if !constants.ValidWeek(req.WeekNum) {
		return nil, ErrUnknownWeek
	}

	plan := &model.WeeklyPlan{
		ID:          model.PlanID(req.Subject, req.Grade, req.WeekNum),
		Subject:     req.Subject,
		Grade:       req.Grade,
		WeekNum:     req.WeekNum,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        normalizeDays(req.Days),
		Footer:      req.Footer,
		LastUpdated: time.Now().UnixMilli(),
	}

	if err := s.repo.Plan.Save(ctx, plan); err != nil {
		s.logger.Error("save plan failed", zap.String("id", plan.ID), zap.Error(err))
		return nil, err
	}

	return plan, nil
}

// normalizeDays guarantees every school-day key is present so downstream
// consumers (exports, analytics) never hit a missing entry.
func normalizeDays(days map[string]model.DayEntry) map[string]model.DayEntry {
	out := make(map[string]model.DayEntry, len(constants.Days))
	for _, day := range constants.Days {
		out[day] = days[day]
	}
	return out
}

// ────────────────────── GetByKey ──────────────────────

func (s *planService) GetByKey(ctx context.Context, subject, grade string, week int) (*model.WeeklyPlan, error) {
	if !constants.ValidWeek(week) {
		return nil, ErrUnknownWeek
	}

	plans, err := s.repo.Plan.List(ctx)
	if err != nil {
		s.logger.Error("list plans failed", zap.Error(err))
		return nil, err
	}

	id := model.PlanID(subject, grade, week)
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i], nil
		}
	}

	return blankPlan(subject, grade, week), nil
}

// blankPlan synthesizes an empty plan spanning the next school week
// (next Sunday through the following Thursday).
func blankPlan(subject, grade string, week int) *model.WeeklyPlan {
	start := nextSunday(time.Now())
	end := start.AddDate(0, 0, 4)

	days := make(map[string]model.DayEntry, len(constants.Days))
	for _, day := range constants.Days {
		days[day] = model.DayEntry{}
	}

	return &model.WeeklyPlan{
		ID:          model.PlanID(subject, grade, week),
		Subject:     subject,
		Grade:       grade,
		WeekNum:     week,
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		Days:        days,
		LastUpdated: time.Now().UnixMilli(),
	}
}

// nextSunday returns the first Sunday strictly after the given day.
func nextSunday(from time.Time) time.Time {
	diff := 7 - int(from.Weekday())
	return from.AddDate(0, 0, diff)
}

// ────────────────────── FullWeekSet ──────────────────────

func (s *planService) FullWeekSet(ctx context.Context, grade string, week int) ([]model.WeeklyPlan, error) {
	if !constants.ValidWeek(week) {
		return nil, ErrUnknownWeek
	}

	subjects, err := s.settings.Subjects(ctx)
	if err != nil {
		return nil, err
	}

	set := make([]model.WeeklyPlan, 0, len(subjects))
	for _, subject := range subjects {
		plan, err := s.GetByKey(ctx, subject, grade, week)
		if err != nil {
			return nil, err
		}
		set = append(set, *plan)
	}
	return set, nil
}

// ────────────────────── SubjectAnalytics ──────────────────────

func (s *planService) SubjectAnalytics(ctx context.Context, subject string) (*dto.SubjectAnalyticsResponse, error) {
	plans, err := s.repo.Plan.List(ctx)
	if err != nil {
		s.logger.Error("list plans failed", zap.Error(err))
		return nil, err
	}

	var matching []model.WeeklyPlan
	for _, p := range plans {
		if p.Subject == subject {
			matching = append(matching, p)
		}
	}

	var totalTests, totalHomework, filledFields int
	totalFields := len(matching) * len(constants.Days) * 5 // 5 trackable fields per day

	for _, plan := range matching {
		for _, day := range constants.Days {
			entry := plan.Days[day]
			if entry.Tests != "" {
				totalTests++
				filledFields++
			}
			if entry.Homework != "" {
				totalHomework++
				filledFields++
			}
			if entry.Classwork != "" {
				filledFields++
			}
			if entry.Items != "" {
				filledFields++
			}
			if entry.Events != "" {
				filledFields++
			}
		}
	}

	completionRate := 0
	if totalFields > 0 {
		completionRate = int(math.Round(float64(filledFields) / float64(totalFields) * 100))
	}

	return &dto.SubjectAnalyticsResponse{
		CompletionRate: completionRate,
		TotalTests:     totalTests,
		TotalHomework:  totalHomework,
		ClassesPlanned: len(matching),
	}, nil
}
