package pgsql

import (
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	settingsRepo := newPgxSettingsRepository(dbPool)
	billingRepo := newPgxBillingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:  accountRepo,
		CurrencyRepo: currencyRepo,
		JournalRepo:  journalRepo,
		SettingsRepo: settingsRepo,
		BillingRepo:  billingRepo,
	}
}
