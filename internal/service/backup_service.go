package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"al-muallim/backend/internal/model"
	"al-muallim/backend/internal/repository"
)

// ── backup module business errors ──

var (
	ErrBackupInvalid = errors.New("backup file is not a valid archive")
)

// backupVersion is the archive format version.
const backupVersion = "1.0"

// BackupArchive is the downloadable backup artifact. Restore ingests
// the same shape verbatim.
type BackupArchive struct {
	Plans    []model.WeeklyPlan    `json:"plans"`
	Settings *model.GlobalSettings `json:"settings"`
	// Timestamp is the creation time, RFC 3339.
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// BackupService covers whole-store backup, restore, and reset.
type BackupService interface {
	// Create serializes the whole store to a downloadable archive.
	// Returns the content, a suggested filename, and an error.
	Create(ctx context.Context) (*bytes.Buffer, string, error)
	// Restore replaces stored state from an archive. All parsing happens
	// before any write: malformed input leaves existing state untouched.
	Restore(ctx context.Context, data []byte) error
	// Reset deletes the plan collection and the settings record.
	// Irreversible.
	Reset(ctx context.Context) error
}

type backupService struct {
	repo     *repository.Repository
	notifier SettingsNotifier
	logger   *zap.Logger
}

// NewBackupService creates a BackupService instance.
func NewBackupService(repo *repository.Repository, notifier SettingsNotifier, logger *zap.Logger) BackupService {
	return &backupService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *backupService) Create(ctx context.Context) (*bytes.Buffer, string, error) {
	plans, err := s.repo.Plan.List(ctx)
	if err != nil {
		s.logger.Error("read plans for backup failed", zap.Error(err))
		return nil, "", err
	}
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		s.logger.Error("read settings for backup failed", zap.Error(err))
		return nil, "", err
	}

	now := time.Now().UTC()
	archive := BackupArchive{
		Plans:     plans,
		Settings:  settings,
		Timestamp: now.Format(time.RFC3339),
		Version:   backupVersion,
	}

	raw, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("al_muallim_backup_%s.json", now.Format("2006-01-02"))
	return bytes.NewBuffer(raw), filename, nil
}

// ────────────────────── Restore ──────────────────────

func (s *backupService) Restore(ctx context.Context, data []byte) error {
	var raw struct {
		Plans    json.RawMessage `json:"plans"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrBackupInvalid
	}

	// Parse both sections up front so a half-valid archive cannot leave
	// the store partially overwritten.
	var plans []model.WeeklyPlan
	hasPlans := len(raw.Plans) > 0 && string(raw.Plans) != "null"
	if hasPlans {
		if err := json.Unmarshal(raw.Plans, &plans); err != nil {
			return ErrBackupInvalid
		}
	}

	var settings model.GlobalSettings
	hasSettings := len(raw.Settings) > 0 && string(raw.Settings) != "null"
	if hasSettings {
		if err := json.Unmarshal(raw.Settings, &settings); err != nil {
			return ErrBackupInvalid
		}
	}

	if hasPlans {
		if err := s.repo.Plan.ReplaceAll(ctx, plans); err != nil {
			s.logger.Error("restore plans failed", zap.Error(err))
			return err
		}
	}
	if hasSettings {
		if err := s.repo.Settings.Save(ctx, &settings); err != nil {
			s.logger.Error("restore settings failed", zap.Error(err))
			return err
		}
		if s.notifier != nil {
			s.notifier.SettingsUpdated(ctx)
		}
	}

	s.logger.Info("backup restored",
		zap.Bool("plans", hasPlans),
		zap.Bool("settings", hasSettings),
	)
	return nil
}

// ────────────────────── Reset ──────────────────────

func (s *backupService) Reset(ctx context.Context) error {
	if err := s.repo.Plan.DeleteAll(ctx); err != nil {
		s.logger.Error("reset plans failed", zap.Error(err))
		return err
	}
	if err := s.repo.Settings.Delete(ctx); err != nil {
		s.logger.Error("reset settings failed", zap.Error(err))
		return err
	}
	s.logger.Warn("all stored data wiped")
	return nil
}
