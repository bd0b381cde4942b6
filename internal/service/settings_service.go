package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"al-muallim/backend/internal/constants"
	"al-muallim/backend/internal/dto"
	"al-muallim/backend/internal/model"
	"al-muallim/backend/internal/repository"
)

// ── settings module business errors ──

var (
	ErrLogoTooLarge = errors.New("school logo exceeds the 500 KB limit")
)

// maxLogoBytes caps the decoded logo size; checked before any write so
// an oversized upload never reaches storage.
const maxLogoBytes = 500 * 1024

// SettingsNotifier receives the settings-updated signal after every
// settings write, so observers can refresh derived views. Notification
// failure must never fail the write, so the method returns nothing.
type SettingsNotifier interface {
	SettingsUpdated(ctx context.Context)
}

// SettingsService is the global settings business interface. It is the
// single decision point for "custom list empty means built-in catalog".
type SettingsService interface {
	Get(ctx context.Context) (*model.GlobalSettings, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*model.GlobalSettings, error)
	Subjects(ctx context.Context) ([]string, error)
	Grades(ctx context.Context) ([]string, error)
}

type settingsService struct {
	repo     *repository.Repository
	notifier SettingsNotifier // nil when Redis is down; degrades to no broadcast
	logger   *zap.Logger
}

// NewSettingsService creates a SettingsService instance.
func NewSettingsService(repo *repository.Repository, notifier SettingsNotifier, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *settingsService) Get(ctx context.Context) (*model.GlobalSettings, error) {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		s.logger.Error("read settings failed", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

// ────────────────────── Update ──────────────────────

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*model.GlobalSettings, error) {
	// base64 inflates by 4/3, so the decoded size is len*3/4
	if len(req.SchoolLogo)/4*3 > maxLogoBytes {
		return nil, ErrLogoTooLarge
	}

	settings := &model.GlobalSettings{
		Announcement:   req.Announcement,
		SchoolName:     req.SchoolName,
		SchoolLogo:     req.SchoolLogo,
		CustomSubjects: req.CustomSubjects,
		CustomGrades:   req.CustomGrades,
	}

	if err := s.repo.Settings.Save(ctx, settings); err != nil {
		s.logger.Error("save settings failed", zap.Error(err))
		return nil, err
	}

	s.notifySettingsUpdated(ctx)

	return settings, nil
}

func (s *settingsService) notifySettingsUpdated(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.SettingsUpdated(ctx)
	}
}

// ────────────────────── catalogs ──────────────────────

func (s *settingsService) Subjects(ctx context.Context) ([]string, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(settings.CustomSubjects) > 0 {
		return settings.CustomSubjects, nil
	}
	return constants.DefaultSubjects, nil
}

func (s *settingsService) Grades(ctx context.Context) ([]string, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(settings.CustomGrades) > 0 {
		return settings.CustomGrades, nil
	}
	return constants.DefaultGrades, nil
}
