package accounting

import (
	"fmt"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a transaction's base-currency
// amount based on account type and transaction type. It is used in both services
// and repositories to ensure consistent accounting logic.
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.BaseAmount()
	isDebit := txn.TransactionType == domain.Debit

	// Determine sign based on accounting convention
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit { // Credit to Asset/Expense
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit { // Debit to Liability/Equity/Revenue
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// DebitCreditTotals sums the base-currency debit and credit sides of a journal's lines.
func DebitCreditTotals(transactions []domain.Transaction) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, txn := range transactions {
		if txn.TransactionType == domain.Debit {
			debits = debits.Add(txn.BaseAmount())
		} else {
			credits = credits.Add(txn.BaseAmount())
		}
	}
	return debits, credits
}

// BalanceDelta returns |sum(debits) - sum(credits)| in base currency.
func BalanceDelta(transactions []domain.Transaction) decimal.Decimal {
	debits, credits := DebitCreditTotals(transactions)
	return debits.Sub(credits).Abs()
}

// IsBalancedWithin reports whether the lines balance within the given epsilon.
// The epsilon absorbs rounding from currency division, not real imbalance.
func IsBalancedWithin(transactions []domain.Transaction, epsilon decimal.Decimal) bool {
	return BalanceDelta(transactions).LessThanOrEqual(epsilon)
}
