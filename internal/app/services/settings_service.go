package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noriyal/madrasa-portal/internal/app/models"
	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/store"
)

// SettingsService manages the configuration singleton and the
// full-backup export/restore path.
type SettingsService interface {
	Get(ctx context.Context) models.PortalSettings
	Update(ctx context.Context, settings models.PortalSettings) error
	Backup(ctx context.Context) dto.BackupDocument
	Restore(ctx context.Context, doc dto.BackupDocument) error
}

type settingsServiceImpl struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewSettingsService creates a new settings service instance.
func NewSettingsService(st *store.Store, logger zerolog.Logger) SettingsService {
	return &settingsServiceImpl{store: st, logger: logger}
}

// Get returns the current settings.
func (s *settingsServiceImpl) Get(ctx context.Context) models.PortalSettings {
	return s.store.Settings()
}

// Update replaces the settings wholesale; no per-field diffing.
func (s *settingsServiceImpl) Update(ctx context.Context, settings models.PortalSettings) error {
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}
	s.logger.Info().Msg("Portal settings updated")
	return nil
}

// Backup bundles all three collections into one document.
func (s *settingsServiceImpl) Backup(ctx context.Context) dto.BackupDocument {
	students, settings, marks := s.store.Backup()
	return dto.BackupDocument{
		Students: students,
		Config:   settings,
		Marks:    marks,
	}
}

// Restore replaces the live collections with a previously exported
// backup after uniqueness validation.
func (s *settingsServiceImpl) Restore(ctx context.Context, doc dto.BackupDocument) error {
	if err := s.store.Restore(ctx, doc.Students, doc.Config, doc.Marks); err != nil {
		return err
	}
	s.logger.Info().Int("students", len(doc.Students)).Int("marksRecords", len(doc.Marks)).Msg("Backup restored")
	return nil
}
