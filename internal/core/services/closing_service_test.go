package services_test

import (
	"context"
	"testing"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/core/services"
	"github.com/parceldesk/ledger_core_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ClosingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockJournalRepository
	mockAccountSvc *MockAccountService
	service        portssvc.ClosingSvcFacade

	branchID   string
	userID     string
	salesID    string
	rentID     string
	retainedID string
	cashID     string
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewClosingService(suite.mockRepo, suite.mockAccountSvc, "USD")

	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.salesID = uuid.NewString()
	suite.rentID = uuid.NewString()
	suite.retainedID = uuid.NewString()
	suite.cashID = uuid.NewString()
}

func (suite *ClosingServiceTestSuite) chartOfAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: suite.cashID, BranchID: suite.branchID, Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
		{AccountID: suite.retainedID, BranchID: suite.branchID, Code: "3020", Name: "Retained Earnings", AccountType: domain.Equity, IsActive: true},
		{AccountID: suite.salesID, BranchID: suite.branchID, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true},
		{AccountID: suite.rentID, BranchID: suite.branchID, Code: "6000", Name: "Rent Expense", AccountType: domain.Expense, IsActive: true},
	}
}

func baseLine(accountID string, txnType domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		Amount:          domain.NewBaseMoney(decimal.RequireFromString(amount), "USD"),
		TransactionType: txnType,
	}
}

func (suite *ClosingServiceTestSuite) request() dto.GenerateClosingRequest {
	return dto.GenerateClosingRequest{
		StartDate:                 domain.Date("2025-01-01"),
		EndDate:                   domain.Date("2025-06-30"),
		RetainedEarningsAccountID: suite.retainedID,
	}
}

func findLine(txns []domain.Transaction, accountID string) *domain.Transaction {
	for i := range txns {
		if txns[i].AccountID == accountID {
			return &txns[i]
		}
	}
	return nil
}

// --- Test Cases ---

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_ReversesNetActivity() {
	ctx := context.Background()

	// Sales: 1100 credit against a 100 debit correction, net 1000 credit.
	// Rent: 300 debit, net 300 debit. Net income 700.
	journals := []domain.Journal{
		{
			JournalID: uuid.NewString(),
			Status:    domain.Posted,
			Transactions: []domain.Transaction{
				baseLine(suite.cashID, domain.Debit, "1100"),
				baseLine(suite.salesID, domain.Credit, "1100"),
			},
		},
		{
			JournalID: uuid.NewString(),
			Status:    domain.Posted,
			Transactions: []domain.Transaction{
				baseLine(suite.salesID, domain.Debit, "100"),
				baseLine(suite.rentID, domain.Debit, "300"),
				baseLine(suite.cashID, domain.Credit, "400"),
			},
		},
	}

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.branchID).Return(suite.chartOfAccounts(), nil).Once()
	suite.mockRepo.On("FindPostedJournalsInRange", ctx, suite.branchID, domain.Date("2025-01-01"), domain.Date("2025-06-30")).Return(journals, nil).Once()

	journal, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, suite.request(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)

	suite.Equal(domain.Draft, journal.Status)
	suite.Equal(domain.Date("2025-06-30"), journal.JournalDate)
	suite.Equal("USD", journal.CurrencyCode)
	suite.True(journal.ExchangeRate.Equal(decimal.NewFromInt(1)))
	suite.Equal("CLOSE-2025-06-30", journal.Reference)
	suite.Require().Len(journal.Transactions, 3)

	salesLine := findLine(journal.Transactions, suite.salesID)
	suite.Require().NotNil(salesLine)
	suite.Equal(domain.Debit, salesLine.TransactionType)
	suite.True(salesLine.BaseAmount().Equal(decimal.RequireFromString("1000")))

	rentLine := findLine(journal.Transactions, suite.rentID)
	suite.Require().NotNil(rentLine)
	suite.Equal(domain.Credit, rentLine.TransactionType)
	suite.True(rentLine.BaseAmount().Equal(decimal.RequireFromString("300")))

	retainedLine := findLine(journal.Transactions, suite.retainedID)
	suite.Require().NotNil(retainedLine)
	suite.Equal(domain.Credit, retainedLine.TransactionType)
	suite.True(retainedLine.BaseAmount().Equal(decimal.RequireFromString("700")))

	// Cash is not a closable account and must never appear.
	suite.Nil(findLine(journal.Transactions, suite.cashID))

	// The generated journal balances exactly.
	debits := decimal.Zero
	credits := decimal.Zero
	for _, txn := range journal.Transactions {
		if txn.TransactionType == domain.Debit {
			debits = debits.Add(txn.BaseAmount())
		} else {
			credits = credits.Add(txn.BaseAmount())
		}
	}
	suite.True(debits.Equal(credits))
}

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_NetLossDebitsRetainedEarnings() {
	ctx := context.Background()

	journals := []domain.Journal{
		{
			JournalID: uuid.NewString(),
			Status:    domain.Posted,
			Transactions: []domain.Transaction{
				baseLine(suite.rentID, domain.Debit, "500"),
				baseLine(suite.salesID, domain.Credit, "200"),
				baseLine(suite.cashID, domain.Credit, "300"),
			},
		},
	}

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.branchID).Return(suite.chartOfAccounts(), nil).Once()
	suite.mockRepo.On("FindPostedJournalsInRange", ctx, suite.branchID, mock.Anything, mock.Anything).Return(journals, nil).Once()

	journal, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, suite.request(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)

	retainedLine := findLine(journal.Transactions, suite.retainedID)
	suite.Require().NotNil(retainedLine)
	suite.Equal(domain.Debit, retainedLine.TransactionType)
	suite.True(retainedLine.BaseAmount().Equal(decimal.RequireFromString("300")))
}

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_NoActivityReturnsNil() {
	ctx := context.Background()

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.branchID).Return(suite.chartOfAccounts(), nil).Once()
	suite.mockRepo.On("FindPostedJournalsInRange", ctx, suite.branchID, mock.Anything, mock.Anything).Return([]domain.Journal{}, nil).Once()

	journal, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, suite.request(), suite.userID)

	suite.Require().NoError(err)
	suite.Nil(journal)
}

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_ZeroNetAccountsEmitNoLines() {
	ctx := context.Background()

	// Sales nets to exactly zero; only rent and retained earnings lines remain.
	journals := []domain.Journal{
		{
			JournalID: uuid.NewString(),
			Status:    domain.Posted,
			Transactions: []domain.Transaction{
				baseLine(suite.salesID, domain.Credit, "250"),
				baseLine(suite.salesID, domain.Debit, "250"),
				baseLine(suite.rentID, domain.Debit, "80"),
				baseLine(suite.cashID, domain.Credit, "80"),
			},
		},
	}

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.branchID).Return(suite.chartOfAccounts(), nil).Once()
	suite.mockRepo.On("FindPostedJournalsInRange", ctx, suite.branchID, mock.Anything, mock.Anything).Return(journals, nil).Once()

	journal, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, suite.request(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Nil(findLine(journal.Transactions, suite.salesID))
	suite.Require().Len(journal.Transactions, 2)
}

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_MissingRetainedEarnings() {
	ctx := context.Background()
	req := suite.request()
	req.RetainedEarningsAccountID = uuid.NewString()

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.branchID).Return(suite.chartOfAccounts(), nil).Once()

	journal, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrMissingRetainedEarnings)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindPostedJournalsInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_RejectsNonEquityRetainedEarnings() {
	ctx := context.Background()
	req := suite.request()
	req.RetainedEarningsAccountID = suite.cashID // an asset account

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.branchID).Return(suite.chartOfAccounts(), nil).Once()

	_, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMissingRetainedEarnings)
}

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_RejectsHeaderRetainedEarnings() {
	ctx := context.Background()

	accounts := suite.chartOfAccounts()
	for i := range accounts {
		if accounts[i].AccountID == suite.retainedID {
			accounts[i].IsHeader = true
		}
	}
	suite.mockAccountSvc.On("ListAccounts", ctx, suite.branchID).Return(accounts, nil).Once()

	_, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, suite.request(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMissingRetainedEarnings)
}

func (suite *ClosingServiceTestSuite) TestGenerateClosingJournal_RejectsInvertedRange() {
	ctx := context.Background()
	req := suite.request()
	req.StartDate = domain.Date("2025-07-01")

	_, err := suite.service.GenerateClosingJournal(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
