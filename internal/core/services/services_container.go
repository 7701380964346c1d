package services

import (
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency and period lock come first since the other services depend on them.
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.PeriodLock = NewPeriodLockService(repos.SettingsRepo, cfg.BaseCurrencyCode)

	container.Account = NewAccountService(repos.AccountRepo, container.Currency)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		container.Currency,
		container.PeriodLock,
		cfg.BalanceEpsilon,
	)
	container.Closing = NewClosingService(repos.JournalRepo, container.Account, cfg.BaseCurrencyCode)
	container.Audit = NewAuditService(repos.JournalRepo, container.Account, repos.BillingRepo, cfg.BalanceEpsilon)

	return container
}
