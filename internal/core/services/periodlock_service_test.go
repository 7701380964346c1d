package services_test

import (
	"context"
	"testing"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

// Ensure MockSettingsRepository implements portsrepo.SettingsRepositoryFacade
var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.SystemSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.SystemSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Test Suite ---
type PeriodLockServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingsRepository
	service  portssvc.PeriodLockSvcFacade
	userID   string
}

func (suite *PeriodLockServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.service = services.NewPeriodLockService(suite.mockRepo, "USD")
	suite.userID = uuid.NewString()
}

func lockedSettings(lockDate domain.Date) *domain.SystemSettings {
	return &domain.SystemSettings{
		LockDate:         &lockDate,
		BaseCurrencyCode: "USD",
	}
}

func hasLockDate(expected domain.Date) func(domain.SystemSettings) bool {
	return func(s domain.SystemSettings) bool {
		return s.LockDate != nil && *s.LockDate == expected
	}
}

func hasNoLockDate(s domain.SystemSettings) bool {
	return s.LockDate == nil
}

// --- Test Cases ---

func (suite *PeriodLockServiceTestSuite) TestGetLockDate_OpenLedger() {
	ctx := context.Background()

	suite.mockRepo.On("GetSettings", ctx).Return(&domain.SystemSettings{BaseCurrencyCode: "USD"}, nil).Once()

	lockDate, err := suite.service.GetLockDate(ctx)

	suite.Require().NoError(err)
	suite.Nil(lockDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestGetLockDate_BeforeFirstSave() {
	ctx := context.Background()

	suite.mockRepo.On("GetSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()

	lockDate, err := suite.service.GetLockDate(ctx)

	suite.Require().NoError(err)
	suite.Nil(lockDate)
}

func (suite *PeriodLockServiceTestSuite) TestLockPeriod_SetsDate() {
	ctx := context.Background()
	lockDate := domain.Date("2025-06-30")

	suite.mockRepo.On("GetSettings", ctx).Return(&domain.SystemSettings{BaseCurrencyCode: "USD"}, nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasLockDate(lockDate))).Return(nil).Once()

	err := suite.service.LockPeriod(ctx, lockDate, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestLockPeriod_InitializesSettingsOnFirstUse() {
	ctx := context.Background()
	lockDate := domain.Date("2025-06-30")

	suite.mockRepo.On("GetSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(func(s domain.SystemSettings) bool {
		return hasLockDate(lockDate)(s) && s.BaseCurrencyCode == "USD" && s.CreatedBy == suite.userID
	})).Return(nil).Once()

	err := suite.service.LockPeriod(ctx, lockDate, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestUnlockPeriod_ClearsDate() {
	ctx := context.Background()

	suite.mockRepo.On("GetSettings", ctx).Return(lockedSettings("2025-06-30"), nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasNoLockDate)).Return(nil).Once()

	err := suite.service.UnlockPeriod(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestWithTemporaryUnlock_RestoresLockAfterSuccess() {
	ctx := context.Background()
	lockDate := domain.Date("2025-06-30")

	suite.mockRepo.On("GetSettings", ctx).Return(lockedSettings(lockDate), nil).Once()
	// Step (a): clear, step (c): restore.
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasNoLockDate)).Return(nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasLockDate(lockDate))).Return(nil).Once()

	ran := false
	err := suite.service.WithTemporaryUnlock(ctx, suite.userID, func(ctx context.Context) error {
		ran = true
		return nil
	})

	suite.Require().NoError(err)
	suite.True(ran)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestWithTemporaryUnlock_RestoresLockAfterPostFailure() {
	ctx := context.Background()
	lockDate := domain.Date("2025-06-30")
	postErr := assert.AnError

	suite.mockRepo.On("GetSettings", ctx).Return(lockedSettings(lockDate), nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasNoLockDate)).Return(nil).Once()
	// The restore still runs even though fn failed.
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasLockDate(lockDate))).Return(nil).Once()

	err := suite.service.WithTemporaryUnlock(ctx, suite.userID, func(ctx context.Context) error {
		return postErr
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, postErr)

	var seqErr *services.AdjustmentSequenceError
	suite.Require().ErrorAs(err, &seqErr)
	suite.ErrorIs(seqErr.PostErr, postErr)
	suite.NoError(seqErr.RelockErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestWithTemporaryUnlock_ReportsRelockFailure() {
	ctx := context.Background()
	lockDate := domain.Date("2025-06-30")
	relockErr := assert.AnError

	suite.mockRepo.On("GetSettings", ctx).Return(lockedSettings(lockDate), nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasNoLockDate)).Return(nil).Once()
	// Restore fails twice: the initial attempt and the single retry.
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasLockDate(lockDate))).Return(relockErr).Twice()

	err := suite.service.WithTemporaryUnlock(ctx, suite.userID, func(ctx context.Context) error {
		return nil
	})

	suite.Require().Error(err)
	var seqErr *services.AdjustmentSequenceError
	suite.Require().ErrorAs(err, &seqErr)
	suite.NoError(seqErr.PostErr)
	suite.ErrorIs(seqErr.RelockErr, relockErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestWithTemporaryUnlock_RelockRetrySucceeds() {
	ctx := context.Background()
	lockDate := domain.Date("2025-06-30")

	suite.mockRepo.On("GetSettings", ctx).Return(lockedSettings(lockDate), nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasNoLockDate)).Return(nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasLockDate(lockDate))).Return(assert.AnError).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasLockDate(lockDate))).Return(nil).Once()

	err := suite.service.WithTemporaryUnlock(ctx, suite.userID, func(ctx context.Context) error {
		return nil
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodLockServiceTestSuite) TestWithTemporaryUnlock_OpenLedgerSkipsSequence() {
	ctx := context.Background()

	suite.mockRepo.On("GetSettings", ctx).Return(&domain.SystemSettings{BaseCurrencyCode: "USD"}, nil).Once()

	ran := false
	err := suite.service.WithTemporaryUnlock(ctx, suite.userID, func(ctx context.Context) error {
		ran = true
		return nil
	})

	suite.Require().NoError(err)
	suite.True(ran)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettings", mock.Anything, mock.Anything)
}

func (suite *PeriodLockServiceTestSuite) TestWithTemporaryUnlock_UnlockFailureLeavesLockUntouched() {
	ctx := context.Background()
	lockDate := domain.Date("2025-06-30")

	suite.mockRepo.On("GetSettings", ctx).Return(lockedSettings(lockDate), nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(hasNoLockDate)).Return(assert.AnError).Once()

	err := suite.service.WithTemporaryUnlock(ctx, suite.userID, func(ctx context.Context) error {
		suite.FailNow("fn must not run when the unlock step fails")
		return nil
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPeriodLockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodLockServiceTestSuite))
}
