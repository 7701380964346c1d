package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Journal    JournalSvcFacade
	PeriodLock PeriodLockSvcFacade
	Closing    ClosingSvcFacade
	Audit      AuditSvcFacade
	Currency   CurrencySvcFacade
}
