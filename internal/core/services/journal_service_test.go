package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/core/services"
	"github.com/parceldesk/ledger_core_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, transactions, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkJournalPosted(ctx context.Context, journalID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, journalID, balanceChanges, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, branchID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindPostedJournalsInRange(ctx context.Context, branchID string, startDate, endDate domain.Date) ([]domain.Journal, error) {
	args := m.Called(ctx, branchID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindPostedJournals(ctx context.Context, branchID string) ([]domain.Journal, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) ListTransactionsByAccountID(ctx context.Context, branchID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, branchID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) CountTransactionsByAccount(ctx context.Context, branchID string) (map[string]int, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

// Ensure MockAccountService implements portssvc.AccountSvcFacade
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, branchID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, branchID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, branchID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, branchID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, branchID string) ([]domain.Account, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, branchID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, branchID string, accountID string, userID string) error {
	args := m.Called(ctx, branchID, accountID, userID)
	return args.Error(0)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

// Ensure MockCurrencyService implements portssvc.CurrencySvcFacade
var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock PeriodLockService ---
type MockPeriodLockService struct {
	mock.Mock
}

// Ensure MockPeriodLockService implements portssvc.PeriodLockSvcFacade
var _ portssvc.PeriodLockSvcFacade = (*MockPeriodLockService)(nil)

func (m *MockPeriodLockService) GetLockDate(ctx context.Context) (*domain.Date, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Date), args.Error(1)
}

func (m *MockPeriodLockService) LockPeriod(ctx context.Context, lockDate domain.Date, userID string) error {
	args := m.Called(ctx, lockDate, userID)
	return args.Error(0)
}

func (m *MockPeriodLockService) UnlockPeriod(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPeriodLockService) WithTemporaryUnlock(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, userID, fn)
	return args.Error(0)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockJournalRepository
	mockAccountSvc  *MockAccountService
	mockCurrencySvc *MockCurrencyService
	mockPeriodLock  *MockPeriodLockService
	service         portssvc.JournalSvcFacade

	branchID string
	userID   string
	cashID   string
	salesID  string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockPeriodLock = new(MockPeriodLockService)
	suite.service = services.NewJournalService(
		suite.mockRepo,
		suite.mockAccountSvc,
		suite.mockCurrencySvc,
		suite.mockPeriodLock,
		decimal.RequireFromString("0.01"),
	)

	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashID = uuid.NewString()
	suite.salesID = uuid.NewString()
}

func (suite *JournalServiceTestSuite) postableAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashID: {
			AccountID:   suite.cashID,
			BranchID:    suite.branchID,
			Code:        "1000",
			Name:        "Cash",
			AccountType: domain.Asset,
			IsActive:    true,
		},
		suite.salesID: {
			AccountID:   suite.salesID,
			BranchID:    suite.branchID,
			Code:        "4000",
			Name:        "Sales",
			AccountType: domain.Revenue,
			IsActive:    true,
		},
	}
}

func (suite *JournalServiceTestSuite) createRequest(debit, credit string) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:         domain.Date("2025-06-15"),
		Description:  "Cash sale",
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.cashID, Amount: decimal.RequireFromString(debit), TransactionType: domain.Debit},
			{AccountID: suite.salesID, Amount: decimal.RequireFromString(credit), TransactionType: domain.Credit},
		},
	}
}

func (suite *JournalServiceTestSuite) expectHappyPathCollaborators() {
	ctx := mock.Anything
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.branchID, mock.AnythingOfType("[]string")).Return(suite.postableAccounts(), nil)
	suite.mockPeriodLock.On("GetLockDate", ctx).Return(nil, nil)
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")

	suite.expectHappyPathCollaborators()
	suite.mockRepo.On("SaveJournal", mock.Anything, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.Anything).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Equal(domain.Posted, journal.Status)
	suite.Equal(suite.branchID, journal.BranchID)
	suite.True(journal.Amount.Equal(decimal.RequireFromString("150.00")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_BalanceChanges() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")

	suite.expectHappyPathCollaborators()
	suite.mockRepo.On("SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		// Debit grows an asset; credit grows revenue. Both deltas positive.
		cash, okCash := changes[suite.cashID]
		sales, okSales := changes[suite.salesID]
		return okCash && okSales &&
			cash.Equal(decimal.RequireFromString("150.00")) &&
			sales.Equal(decimal.RequireFromString("150.00"))
	})).Return(nil).Once()

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnbalancedBeyondEpsilon() {
	ctx := context.Background()
	req := suite.createRequest("100.00", "99.98")

	suite.expectHappyPathCollaborators()

	journal, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_ImbalanceWithinEpsilonPasses() {
	ctx := context.Background()
	// 0.009 drift is below the 0.01 tolerance.
	req := suite.createRequest("100.009", "100.00")

	suite.expectHappyPathCollaborators()
	suite.mockRepo.On("SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_ImbalanceJustBeyondEpsilonFails() {
	ctx := context.Background()
	// 0.011 drift is above the 0.01 tolerance.
	req := suite.createRequest("100.011", "100.00")

	suite.expectHappyPathCollaborators()

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DraftSkipsBalanceCheck() {
	ctx := context.Background()
	req := suite.createRequest("100.00", "40.00")
	req.Status = domain.Draft

	suite.expectHappyPathCollaborators()
	suite.mockRepo.On("SaveJournal", mock.Anything, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Status == domain.Draft
	}), mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		// Drafts never touch balances.
		return len(changes) == 0
	})).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, journal.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsDateInLockedPeriod() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	lockDate := domain.Date("2025-06-30")

	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", mock.Anything, suite.branchID, mock.Anything).Return(suite.postableAccounts(), nil)
	suite.mockPeriodLock.On("GetLockDate", mock.Anything).Return(&lockDate, nil)

	journal, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrPeriodLocked)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AllowsDateAfterLockDate() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	lockDate := domain.Date("2025-05-31")

	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", mock.Anything, suite.branchID, mock.Anything).Return(suite.postableAccounts(), nil)
	suite.mockPeriodLock.On("GetLockDate", mock.Anything).Return(&lockDate, nil)
	suite.mockRepo.On("SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsHeaderAccount() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")

	accounts := suite.postableAccounts()
	header := accounts[suite.salesID]
	header.IsHeader = true
	accounts[suite.salesID] = header

	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", mock.Anything, suite.branchID, mock.Anything).Return(accounts, nil)
	suite.mockPeriodLock.On("GetLockDate", mock.Anything).Return(nil, nil)

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrHeaderAccountPosting)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsSingleLine() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	req.Transactions = req.Transactions[:1]

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalMinEntries)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsSingleAccount() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	req.Transactions[1].AccountID = suite.cashID

	suite.expectHappyPathCollaborators()

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsZeroExchangeRate() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	req.ExchangeRate = decimal.Zero

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidExchangeRate)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsMissingDescription() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	req.Description = ""

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsUnknownCurrency() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	req.CurrencyCode = "XXX"

	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "XXX").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_ForeignCurrencyConversion() {
	ctx := context.Background()
	req := suite.createRequest("100.00", "100.00")
	req.CurrencyCode = "EUR"
	req.ExchangeRate = decimal.RequireFromString("0.8") // 1 base unit = 0.8 EUR

	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", mock.Anything, suite.branchID, mock.Anything).Return(suite.postableAccounts(), nil)
	suite.mockPeriodLock.On("GetLockDate", mock.Anything).Return(nil, nil)
	suite.mockRepo.On("SaveJournal", mock.Anything, mock.Anything, mock.MatchedBy(func(txns []domain.Transaction) bool {
		// 100 EUR at 0.8 is 125 in base currency.
		return len(txns) == 2 && txns[0].BaseAmount().Equal(decimal.RequireFromString("125"))
	}), mock.Anything).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(journal.Amount.Equal(decimal.RequireFromString("125")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostAdjustmentJournal_RoutesThroughTemporaryUnlock() {
	ctx := context.Background()
	req := suite.createRequest("150.00", "150.00")
	req.Date = domain.Date("2025-05-15") // inside the locked period
	lockDate := domain.Date("2025-06-30")

	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", mock.Anything, suite.branchID, mock.Anything).Return(suite.postableAccounts(), nil)
	suite.mockPeriodLock.On("GetLockDate", mock.Anything).Return(&lockDate, nil)

	suite.mockRepo.On("SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPeriodLock.On("WithTemporaryUnlock", mock.Anything, suite.userID, mock.AnythingOfType("func(context.Context) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(context.Context) error)
			suite.NoError(fn(ctx))
		}).Return(nil).Once()

	journal, err := suite.service.PostAdjustmentJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Equal(domain.Posted, journal.Status)
	suite.mockPeriodLock.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostAdjustmentJournal_StillRejectsUnbalanced() {
	ctx := context.Background()
	req := suite.createRequest("100.00", "99.00")
	req.Date = domain.Date("2025-05-15")
	lockDate := domain.Date("2025-06-30")

	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", mock.Anything, suite.branchID, mock.Anything).Return(suite.postableAccounts(), nil)
	suite.mockPeriodLock.On("GetLockDate", mock.Anything).Return(&lockDate, nil)

	_, err := suite.service.PostAdjustmentJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
	suite.mockPeriodLock.AssertNotCalled(suite.T(), "WithTemporaryUnlock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostDraftJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()

	amount, err := domain.NewMoney(decimal.RequireFromString("150.00"), "USD", decimal.NewFromInt(1))
	suite.Require().NoError(err)
	draft := &domain.Journal{
		JournalID:    journalID,
		BranchID:     suite.branchID,
		JournalDate:  domain.Date("2025-06-15"),
		Description:  "Cash sale",
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		Status:       domain.Draft,
	}
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashID, Amount: amount, TransactionType: domain.Debit},
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: suite.salesID, Amount: amount, TransactionType: domain.Credit},
	}

	suite.mockRepo.On("FindJournalByID", mock.Anything, journalID).Return(draft, nil).Once()
	suite.mockRepo.On("FindTransactionsByJournalID", mock.Anything, journalID).Return(txns, nil).Once()
	suite.expectHappyPathCollaborators()
	suite.mockRepo.On("MarkJournalPosted", mock.Anything, journalID, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostDraftJournal(ctx, suite.branchID, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostDraftJournal_RejectsAlreadyPosted() {
	ctx := context.Background()
	journalID := uuid.NewString()
	posted := &domain.Journal{
		JournalID: journalID,
		BranchID:  suite.branchID,
		Status:    domain.Posted,
	}

	suite.mockRepo.On("FindJournalByID", mock.Anything, journalID).Return(posted, nil).Once()
	suite.mockRepo.On("FindTransactionsByJournalID", mock.Anything, journalID).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.PostDraftJournal(ctx, suite.branchID, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_WrongBranchIsNotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{
		JournalID: journalID,
		BranchID:  uuid.NewString(), // different branch
		Status:    domain.Posted,
	}

	suite.mockRepo.On("FindJournalByID", mock.Anything, journalID).Return(journal, nil).Once()

	result, err := suite.service.GetJournalByID(ctx, suite.branchID, journalID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindTransactionsByJournalID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournals_PassesPaginationThrough() {
	ctx := context.Background()
	token := "eyJvZmZzZXQiOjF9"
	journals := []domain.Journal{
		{JournalID: uuid.NewString(), BranchID: suite.branchID, Status: domain.Posted},
	}

	suite.mockRepo.On("ListJournalsByBranch", mock.Anything, suite.branchID, 20, (*string)(nil)).Return(journals, token, nil).Once()

	resp, err := suite.service.ListJournals(ctx, suite.branchID, dto.ListJournalsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
