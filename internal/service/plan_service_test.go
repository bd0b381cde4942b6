package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"al-muallim/backend/internal/dto"
	"al-muallim/backend/internal/model"
	"al-muallim/backend/internal/repository"
)

// ── test helpers ──

func setupTestPlanService() (PlanService, *mockPlanRepo, *mockSettingsRepo) {
	planRepo := newMockPlanRepo()
	settingsRepo := newMockSettingsRepo()
	repo := &repository.Repository{
		Plan:     planRepo,
		Settings: settingsRepo,
	}
	logger := zap.NewNop()
	settings := NewSettingsService(repo, nil, logger)
	svc := NewPlanService(repo, settings, logger)
	return svc, planRepo, settingsRepo
}

func savePlanReq(subject, grade string, week int) *dto.SavePlanRequest {
	return &dto.SavePlanRequest{
		Subject:   subject,
		Grade:     grade,
		WeekNum:   week,
		StartDate: "2026-09-06",
		EndDate:   "2026-09-10",
		Days: map[string]model.DayEntry{
			"Day 1": {Classwork: "Chapter 1", Homework: "Exercise 1"},
		},
	}
}

// ── Save tests ──

func TestPlanService_Save_DerivesID(t *testing.T) {
	svc, _, _ := setupTestPlanService()

	plan, err := svc.Save(context.Background(), savePlanReq("Math", "Grade 3", 5))
	if err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}
	if plan.ID != "Math-Grade 3-5" {
		t.Errorf("expected ID=Math-Grade 3-5, got %s", plan.ID)
	}
	if plan.LastUpdated == 0 {
		t.Error("expected LastUpdated to be stamped")
	}
}

func TestPlanService_Save_FillsAllDays(t *testing.T) {
	svc, _, _ := setupTestPlanService()

	plan, err := svc.Save(context.Background(), savePlanReq("Math", "Grade 3", 5))
	if err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}
	if len(plan.Days) != 5 {
		t.Fatalf("expected 5 day entries, got %d", len(plan.Days))
	}
	if plan.Days["Day 1"].Classwork != "Chapter 1" {
		t.Errorf("expected Day 1 classwork preserved, got %q", plan.Days["Day 1"].Classwork)
	}
	if plan.Days["Day 4"].Classwork != "" {
		t.Errorf("expected Day 4 blank, got %q", plan.Days["Day 4"].Classwork)
	}
}

func TestPlanService_Save_UpsertKeepsOneRecord(t *testing.T) {
	svc, planRepo, _ := setupTestPlanService()
	ctx := context.Background()

	if _, err := svc.Save(ctx, savePlanReq("Math", "Grade 3", 5)); err != nil {
		t.Fatalf("first Save should succeed: %v", err)
	}
	req := savePlanReq("Math", "Grade 3", 5)
	req.Days["Day 1"] = model.DayEntry{Classwork: "Chapter 2"}
	if _, err := svc.Save(ctx, req); err != nil {
		t.Fatalf("second Save should succeed: %v", err)
	}

	if len(planRepo.plans) != 1 {
		t.Fatalf("expected one record after two saves, got %d", len(planRepo.plans))
	}
	if planRepo.plans[0].Days["Day 1"].Classwork != "Chapter 2" {
		t.Errorf("expected second save to win, got %q", planRepo.plans[0].Days["Day 1"].Classwork)
	}
}

func TestPlanService_Save_InvalidWeek(t *testing.T) {
	svc, _, _ := setupTestPlanService()

	for _, week := range []int{0, -1, 53} {
		if _, err := svc.Save(context.Background(), savePlanReq("Math", "Grade 3", week)); !errors.Is(err, ErrUnknownWeek) {
			t.Errorf("week %d: expected ErrUnknownWeek, got %v", week, err)
		}
	}
}

// ── GetByKey tests ──

func TestPlanService_GetByKey_ReturnsSaved(t *testing.T) {
	svc, _, _ := setupTestPlanService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, savePlanReq("Science", "Grade 2", 8))
	if err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}

	got, err := svc.GetByKey(ctx, "Science", "Grade 2", 8)
	if err != nil {
		t.Fatalf("GetByKey should succeed: %v", err)
	}
	if got.ID != saved.ID {
		t.Errorf("expected ID %s, got %s", saved.ID, got.ID)
	}
	if got.Days["Day 1"].Homework != "Exercise 1" {
		t.Errorf("expected saved homework, got %q", got.Days["Day 1"].Homework)
	}
}

func TestPlanService_GetByKey_SynthesizesBlank(t *testing.T) {
	svc, planRepo, _ := setupTestPlanService()

	got, err := svc.GetByKey(context.Background(), "ICT", "Grade 6", 12)
	if err != nil {
		t.Fatalf("GetByKey should succeed: %v", err)
	}
	if got.ID != "ICT-Grade 6-12" {
		t.Errorf("expected synthesized ID, got %s", got.ID)
	}
	if len(got.Days) != 5 {
		t.Errorf("expected 5 blank day entries, got %d", len(got.Days))
	}
	if len(planRepo.plans) != 0 {
		t.Error("synthesized plan must not be persisted")
	}
}

func TestPlanService_GetByKey_BlankSpansSundayToThursday(t *testing.T) {
	svc, _, _ := setupTestPlanService()

	got, err := svc.GetByKey(context.Background(), "Math", "Grade 1", 1)
	if err != nil {
		t.Fatalf("GetByKey should succeed: %v", err)
	}

	start, err := time.Parse("2006-01-02", got.StartDate)
	if err != nil {
		t.Fatalf("StartDate should parse: %v", err)
	}
	end, err := time.Parse("2006-01-02", got.EndDate)
	if err != nil {
		t.Fatalf("EndDate should parse: %v", err)
	}
	if start.Weekday() != time.Sunday {
		t.Errorf("expected start on Sunday, got %s", start.Weekday())
	}
	if end.Weekday() != time.Thursday {
		t.Errorf("expected end on Thursday, got %s", end.Weekday())
	}
	if !start.After(time.Now().AddDate(0, 0, -1)) {
		t.Errorf("expected start in the future, got %s", got.StartDate)
	}
}

func TestPlanService_GetByKey_InvalidWeek(t *testing.T) {
	svc, _, _ := setupTestPlanService()

	if _, err := svc.GetByKey(context.Background(), "Math", "Grade 1", 99); !errors.Is(err, ErrUnknownWeek) {
		t.Errorf("expected ErrUnknownWeek, got %v", err)
	}
}

// ── FullWeekSet tests ──

func TestPlanService_FullWeekSet_CatalogOrder(t *testing.T) {
	svc, _, settingsRepo := setupTestPlanService()
	settingsRepo.settings = &model.GlobalSettings{CustomSubjects: []string{"Math", "Science"}}
	ctx := context.Background()

	if _, err := svc.Save(ctx, savePlanReq("Science", "Grade 1", 12)); err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}

	set, err := svc.FullWeekSet(ctx, "Grade 1", 12)
	if err != nil {
		t.Fatalf("FullWeekSet should succeed: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(set))
	}
	if set[0].ID != "Math-Grade 1-12" {
		t.Errorf("expected synthesized Math plan first, got %s", set[0].ID)
	}
	if set[1].ID != "Science-Grade 1-12" {
		t.Errorf("expected saved Science plan second, got %s", set[1].ID)
	}
	if set[1].Days["Day 1"].Classwork != "Chapter 1" {
		t.Error("expected persisted content for Science")
	}
}

func TestPlanService_FullWeekSet_DefaultCatalog(t *testing.T) {
	svc, _, _ := setupTestPlanService()

	set, err := svc.FullWeekSet(context.Background(), "Grade 4", 3)
	if err != nil {
		t.Fatalf("FullWeekSet should succeed: %v", err)
	}
	if len(set) != 8 {
		t.Errorf("expected 8 built-in subjects, got %d", len(set))
	}
}

// ── SubjectAnalytics tests ──

func TestPlanService_SubjectAnalytics_Empty(t *testing.T) {
	svc, _, _ := setupTestPlanService()

	got, err := svc.SubjectAnalytics(context.Background(), "Math")
	if err != nil {
		t.Fatalf("SubjectAnalytics should succeed: %v", err)
	}
	if got.CompletionRate != 0 || got.TotalTests != 0 || got.TotalHomework != 0 || got.ClassesPlanned != 0 {
		t.Errorf("expected all-zero analytics, got %+v", got)
	}
}

func TestPlanService_SubjectAnalytics_Counts(t *testing.T) {
	svc, _, _ := setupTestPlanService()
	ctx := context.Background()

	req := savePlanReq("Math", "Grade 3", 5)
	req.Days = map[string]model.DayEntry{
		"Day 1": {Classwork: "a", Homework: "b", Items: "c", Tests: "d", Events: "e"},
		"Day 2": {Tests: "quiz"},
	}
	if _, err := svc.Save(ctx, req); err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}
	if _, err := svc.Save(ctx, savePlanReq("Science", "Grade 3", 5)); err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}

	got, err := svc.SubjectAnalytics(ctx, "Math")
	if err != nil {
		t.Fatalf("SubjectAnalytics should succeed: %v", err)
	}
	if got.ClassesPlanned != 1 {
		t.Errorf("expected 1 plan counted, got %d", got.ClassesPlanned)
	}
	if got.TotalTests != 2 {
		t.Errorf("expected 2 tests, got %d", got.TotalTests)
	}
	if got.TotalHomework != 1 {
		t.Errorf("expected 1 homework, got %d", got.TotalHomework)
	}
	// 6 filled fields over 25 slots
	if got.CompletionRate != 24 {
		t.Errorf("expected completion rate 24, got %d", got.CompletionRate)
	}
}

func TestPlanService_SubjectAnalytics_FullyPlanned(t *testing.T) {
	svc, _, _ := setupTestPlanService()
	ctx := context.Background()

	req := savePlanReq("Quran", "Grade 2", 1)
	req.Days = make(map[string]model.DayEntry)
	for _, day := range []string{"Day 1", "Day 2", "Day 3", "Day 4", "Day 5"} {
		req.Days[day] = model.DayEntry{Classwork: "a", Homework: "b", Items: "c", Tests: "d", Events: "e"}
	}
	if _, err := svc.Save(ctx, req); err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}

	got, err := svc.SubjectAnalytics(ctx, "Quran")
	if err != nil {
		t.Fatalf("SubjectAnalytics should succeed: %v", err)
	}
	if got.CompletionRate != 100 {
		t.Errorf("expected completion rate 100, got %d", got.CompletionRate)
	}
}

func TestPlanService_List_RepoError(t *testing.T) {
	svc, planRepo, _ := setupTestPlanService()
	planRepo.err = errors.New("connection refused")

	if _, err := svc.List(context.Background()); err == nil {
		t.Error("expected storage error to propagate")
	}
}
