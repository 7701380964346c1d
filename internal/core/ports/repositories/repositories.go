package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This decouples services from concrete repository implementations.
type RepositoryProvider struct {
	AccountRepo  AccountRepositoryFacade
	CurrencyRepo CurrencyRepositoryFacade
	JournalRepo  JournalRepositoryFacade
	SettingsRepo SettingsRepositoryFacade
	BillingRepo  BillingReader
}
