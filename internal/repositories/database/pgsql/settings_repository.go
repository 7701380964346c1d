package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	"github.com/parceldesk/ledger_core_app/internal/models"
	"github.com/parceldesk/ledger_core_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	pool *pgxpool.Pool
}

// newPgxSettingsRepository creates a new repository for the system settings singleton.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{pool: pool}
}

// Ensure PgxSettingsRepository implements portsrepo.SettingsRepositoryFacade
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// The settings table holds exactly one row, keyed by a constant ID so upserts
// stay trivial.
const settingsRowID = 1

// GetSettings retrieves the settings row, or apperrors.ErrNotFound before first save.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.SystemSettings, error) {
	query := `
		SELECT lock_date, base_currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM system_settings
		WHERE id = $1;
	`
	var m models.SystemSettings
	var lockDate sql.NullTime

	err := r.pool.QueryRow(ctx, query, settingsRowID).Scan(
		&lockDate,
		&m.BaseCurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to load system settings", err)
	}

	if lockDate.Valid {
		s := lockDate.Time.Format("2006-01-02")
		m.LockDate = &s
	}

	settings := mapping.ToDomainSystemSettings(m)
	return &settings, nil
}

// SaveSettings upserts the settings row.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.SystemSettings) error {
	m := mapping.ToModelSystemSettings(settings)

	var lockDate interface{}
	if m.LockDate != nil {
		parsed, err := time.Parse("2006-01-02", *m.LockDate)
		if err != nil {
			return apperrors.NewAppError(400, "invalid lock date "+*m.LockDate, err)
		}
		lockDate = parsed
	}

	query := `
		INSERT INTO system_settings (id, lock_date, base_currency_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET lock_date = EXCLUDED.lock_date,
		    base_currency_code = EXCLUDED.base_currency_code,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		settingsRowID,
		lockDate,
		m.BaseCurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save system settings", err)
	}
	return nil
}
