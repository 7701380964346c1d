package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/middleware"
)

// AdjustmentSequenceError reports a partial unlock/post/relock sequence.
// PostErr is the failure from the posting step, if any; RelockErr is the final
// outcome of restoring the lock date. It is returned whenever the sequence
// could not complete cleanly, so the caller always learns the final lock state.
type AdjustmentSequenceError struct {
	PostErr   error
	RelockErr error
}

func (e *AdjustmentSequenceError) Error() string {
	switch {
	case e.PostErr != nil && e.RelockErr != nil:
		return fmt.Sprintf("adjustment posting failed (%v) and the period lock could not be restored (%v); lock state requires operator attention", e.PostErr, e.RelockErr)
	case e.RelockErr != nil:
		return fmt.Sprintf("adjustment posted but the period lock could not be restored: %v; lock state requires operator attention", e.RelockErr)
	default:
		return fmt.Sprintf("adjustment posting failed: %v", e.PostErr)
	}
}

func (e *AdjustmentSequenceError) Unwrap() []error {
	var errs []error
	if e.PostErr != nil {
		errs = append(errs, e.PostErr)
	}
	if e.RelockErr != nil {
		errs = append(errs, e.RelockErr)
	}
	return errs
}

// periodLockService owns the singleton lock date. All lock-state mutations,
// including the three-step adjustment sequence, are serialized through mu so no
// concurrent caller of this process can observe the temporarily unlocked window.
// The store round trips themselves remain three separate writes.
type periodLockService struct {
	settingsRepo     portsrepo.SettingsRepositoryFacade
	baseCurrencyCode string
	mu               sync.Mutex
}

// NewPeriodLockService creates a new PeriodLockService.
func NewPeriodLockService(settingsRepo portsrepo.SettingsRepositoryFacade, baseCurrencyCode string) portssvc.PeriodLockSvcFacade {
	return &periodLockService{
		settingsRepo:     settingsRepo,
		baseCurrencyCode: baseCurrencyCode,
	}
}

// Ensure periodLockService implements the portssvc.PeriodLockSvcFacade interface
var _ portssvc.PeriodLockSvcFacade = (*periodLockService)(nil)

// loadOrInit returns the settings row, or a fresh unsaved one before first save.
func (s *periodLockService) loadOrInit(ctx context.Context, userID string) (domain.SystemSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			now := time.Now().UTC()
			return domain.SystemSettings{
				BaseCurrencyCode: s.baseCurrencyCode,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}, nil
		}
		return domain.SystemSettings{}, fmt.Errorf("failed to load system settings: %w", err)
	}
	return *settings, nil
}

func (s *periodLockService) saveLockDate(ctx context.Context, settings domain.SystemSettings, lockDate *domain.Date, userID string) error {
	settings.LockDate = lockDate
	settings.LastUpdatedAt = time.Now().UTC()
	settings.LastUpdatedBy = userID
	return s.settingsRepo.SaveSettings(ctx, settings)
}

// GetLockDate returns the current lock date, or nil when the ledger is fully open.
// Implements portssvc.PeriodLockSvcFacade
func (s *periodLockService) GetLockDate(ctx context.Context) (*domain.Date, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load system settings: %w", err)
	}
	return settings.LockDate, nil
}

// LockPeriod unconditionally sets the lock date. The health-audit gate runs at
// the call site; the manager does not re-check.
// Implements portssvc.PeriodLockSvcFacade
func (s *periodLockService) LockPeriod(ctx context.Context, lockDate domain.Date, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.loadOrInit(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.saveLockDate(ctx, settings, &lockDate, userID); err != nil {
		return fmt.Errorf("failed to set lock date: %w", err)
	}

	logger.Info("Period locked", slog.String("lock_date", lockDate.String()), slog.String("user_id", userID))
	return nil
}

// UnlockPeriod clears the lock date, reopening the ledger.
// Implements portssvc.PeriodLockSvcFacade
func (s *periodLockService) UnlockPeriod(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.loadOrInit(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.saveLockDate(ctx, settings, nil, userID); err != nil {
		return fmt.Errorf("failed to clear lock date: %w", err)
	}

	logger.Info("Period unlocked", slog.String("user_id", userID))
	return nil
}

// WithTemporaryUnlock runs the three-step adjustment sequence: clear the lock
// date, run fn, restore the original lock date. The restore is attempted even
// when fn fails, and retried once if it fails itself; a partial sequence is
// reported as an *AdjustmentSequenceError carrying both outcomes.
// Implements portssvc.PeriodLockSvcFacade
func (s *periodLockService) WithTemporaryUnlock(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.loadOrInit(ctx, userID)
	if err != nil {
		return err
	}
	originalLockDate := settings.LockDate

	if originalLockDate == nil {
		// Ledger already open; nothing to unlock or restore.
		return fn(ctx)
	}

	// Step (a): temporary unlock. A failure here leaves the lock untouched.
	if err := s.saveLockDate(ctx, settings, nil, userID); err != nil {
		return fmt.Errorf("failed to temporarily unlock period: %w", err)
	}
	logger.Info("Period temporarily unlocked for adjustment", slog.String("lock_date", originalLockDate.String()))

	// Step (b): post through the collaborator.
	postErr := fn(ctx)

	// Step (c): restore, exactly once per invocation, with a single retry.
	relockErr := s.saveLockDate(ctx, settings, originalLockDate, userID)
	if relockErr != nil {
		logger.Warn("Failed to restore period lock, retrying", slog.String("error", relockErr.Error()))
		relockErr = s.saveLockDate(ctx, settings, originalLockDate, userID)
	}

	if relockErr != nil {
		logger.Error("Period lock could not be restored after adjustment sequence",
			slog.String("lock_date", originalLockDate.String()),
			slog.Any("post_error", postErr),
			slog.String("relock_error", relockErr.Error()))
		return &AdjustmentSequenceError{PostErr: postErr, RelockErr: relockErr}
	}

	if postErr != nil {
		logger.Warn("Adjustment posting failed; period lock restored", slog.String("error", postErr.Error()))
		return &AdjustmentSequenceError{PostErr: postErr}
	}

	logger.Info("Period lock restored after adjustment", slog.String("lock_date", originalLockDate.String()))
	return nil
}
