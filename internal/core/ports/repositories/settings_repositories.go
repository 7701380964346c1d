package repositories

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
)

// SettingsRepositoryFacade persists the singleton system settings row.
// Only one lock date exists at a time; the row is created on first save.
type SettingsRepositoryFacade interface {
	// GetSettings retrieves the settings row, or apperrors.ErrNotFound before first save.
	GetSettings(ctx context.Context) (*domain.SystemSettings, error)

	// SaveSettings upserts the settings row.
	SaveSettings(ctx context.Context, settings domain.SystemSettings) error
}
