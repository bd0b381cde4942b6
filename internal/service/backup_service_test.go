package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"al-muallim/backend/internal/model"
	"al-muallim/backend/internal/repository"
)

// ── test helpers ──

func setupTestBackupService() (BackupService, *mockPlanRepo, *mockSettingsRepo, *mockNotifier) {
	planRepo := newMockPlanRepo()
	settingsRepo := newMockSettingsRepo()
	repo := &repository.Repository{
		Plan:     planRepo,
		Settings: settingsRepo,
	}
	notifier := &mockNotifier{}
	svc := NewBackupService(repo, notifier, zap.NewNop())
	return svc, planRepo, settingsRepo, notifier
}

func testPlan(subject, grade string, week int) model.WeeklyPlan {
	return model.WeeklyPlan{
		ID:      model.PlanID(subject, grade, week),
		Subject: subject,
		Grade:   grade,
		WeekNum: week,
		Days: map[string]model.DayEntry{
			"Day 1": {Classwork: "Review"},
		},
	}
}

// ── Create tests ──

func TestBackupService_Create_ArchiveShape(t *testing.T) {
	svc, planRepo, settingsRepo, _ := setupTestBackupService()
	planRepo.plans = []model.WeeklyPlan{testPlan("Math", "Grade 1", 3)}
	settingsRepo.settings = &model.GlobalSettings{SchoolName: "Al Noor"}

	buf, filename, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if !strings.HasPrefix(filename, "al_muallim_backup_") || !strings.HasSuffix(filename, ".json") {
		t.Errorf("unexpected filename %q", filename)
	}

	var archive BackupArchive
	if err := json.Unmarshal(buf.Bytes(), &archive); err != nil {
		t.Fatalf("archive should be valid JSON: %v", err)
	}
	if archive.Version != backupVersion {
		t.Errorf("expected version %s, got %s", backupVersion, archive.Version)
	}
	if len(archive.Plans) != 1 || archive.Plans[0].ID != "Math-Grade 1-3" {
		t.Errorf("expected one plan in archive, got %+v", archive.Plans)
	}
	if archive.Settings == nil || archive.Settings.SchoolName != "Al Noor" {
		t.Error("expected settings in archive")
	}
	if archive.Timestamp == "" {
		t.Error("expected a creation timestamp")
	}
}

// ── Restore tests ──

func TestBackupService_Restore_RoundTrip(t *testing.T) {
	svc, planRepo, settingsRepo, notifier := setupTestBackupService()
	planRepo.plans = []model.WeeklyPlan{testPlan("Math", "Grade 1", 3), testPlan("Science", "Grade 2", 4)}
	settingsRepo.settings = &model.GlobalSettings{SchoolName: "Al Noor", Announcement: "hello"}
	ctx := context.Background()

	buf, _, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	// wipe, then restore from the archive
	planRepo.plans = nil
	settingsRepo.settings = nil
	if err := svc.Restore(ctx, buf.Bytes()); err != nil {
		t.Fatalf("Restore should succeed: %v", err)
	}

	if len(planRepo.plans) != 2 {
		t.Fatalf("expected 2 restored plans, got %d", len(planRepo.plans))
	}
	if settingsRepo.settings == nil || settingsRepo.settings.SchoolName != "Al Noor" {
		t.Error("expected restored settings")
	}
	if notifier.calls != 1 {
		t.Errorf("expected 1 notification after settings restore, got %d", notifier.calls)
	}
}

func TestBackupService_Restore_MalformedLeavesStateUntouched(t *testing.T) {
	svc, planRepo, settingsRepo, notifier := setupTestBackupService()
	planRepo.plans = []model.WeeklyPlan{testPlan("Math", "Grade 1", 3)}
	settingsRepo.settings = &model.GlobalSettings{SchoolName: "Keep Me"}

	cases := []string{
		"not json at all",
		`{"plans": "should be an array"}`,
		`{"plans": [], "settings": 42}`,
	}
	for _, input := range cases {
		if err := svc.Restore(context.Background(), []byte(input)); !errors.Is(err, ErrBackupInvalid) {
			t.Errorf("input %q: expected ErrBackupInvalid, got %v", input, err)
		}
	}

	if len(planRepo.plans) != 1 || settingsRepo.settings.SchoolName != "Keep Me" {
		t.Error("malformed restore must not modify stored state")
	}
	if notifier.calls != 0 {
		t.Error("failed restore must not notify")
	}
}

func TestBackupService_Restore_PlansOnly(t *testing.T) {
	svc, planRepo, settingsRepo, notifier := setupTestBackupService()
	settingsRepo.settings = &model.GlobalSettings{SchoolName: "Keep Me"}

	archive := `{"plans": [{"id": "Math-Grade 1-3", "subject": "Math", "grade": "Grade 1", "weekNum": 3}]}`
	if err := svc.Restore(context.Background(), []byte(archive)); err != nil {
		t.Fatalf("Restore should succeed: %v", err)
	}
	if len(planRepo.plans) != 1 {
		t.Errorf("expected 1 restored plan, got %d", len(planRepo.plans))
	}
	if settingsRepo.settings.SchoolName != "Keep Me" {
		t.Error("settings must survive a plans-only archive")
	}
	if notifier.calls != 0 {
		t.Error("plans-only restore must not notify")
	}
}

// ── Reset tests ──

func TestBackupService_Reset_WipesEverything(t *testing.T) {
	svc, planRepo, settingsRepo, _ := setupTestBackupService()
	planRepo.plans = []model.WeeklyPlan{testPlan("Math", "Grade 1", 3)}
	settingsRepo.settings = &model.GlobalSettings{SchoolName: "Al Noor"}

	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("Reset should succeed: %v", err)
	}
	if len(planRepo.plans) != 0 {
		t.Error("expected plans wiped")
	}
	if settingsRepo.settings != nil {
		t.Error("expected settings wiped")
	}
}
