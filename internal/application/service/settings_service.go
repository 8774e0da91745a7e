package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
)

// SettingsService handles per-user settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves user settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.UserSettings{
			UserID:             userID,
			Language:           "en",
			Timezone:           "Asia/Colombo",
			DateFormat:         "YYYY-MM-DD",
			EmailNotifications: true,
			AppointmentAlerts:  true,
			DuePaymentAlerts:   true,
			LowStockAlerts:     true,
			ExpiryAlerts:       true,
			Theme:              "light",
			CompactMode:        false,
			SessionTimeout:     "30",
			LoginAlerts:        true,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	UserID             uuid.UUID
	Language           string
	Timezone           string
	DateFormat         string
	EmailNotifications bool
	AppointmentAlerts  bool
	DuePaymentAlerts   bool
	LowStockAlerts     bool
	ExpiryAlerts       bool
	Theme              string
	CompactMode        bool
	SessionTimeout     string
	LoginAlerts        bool
}

// UpdateSettings updates user settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.UserSettings{
			UserID: input.UserID,
		}
	}

	settings.Language = input.Language
	settings.Timezone = input.Timezone
	settings.DateFormat = input.DateFormat
	settings.EmailNotifications = input.EmailNotifications
	settings.AppointmentAlerts = input.AppointmentAlerts
	settings.DuePaymentAlerts = input.DuePaymentAlerts
	settings.LowStockAlerts = input.LowStockAlerts
	settings.ExpiryAlerts = input.ExpiryAlerts
	settings.Theme = input.Theme
	settings.CompactMode = input.CompactMode
	settings.SessionTimeout = input.SessionTimeout
	settings.LoginAlerts = input.LoginAlerts

	if settings.ID == uuid.Nil {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}
