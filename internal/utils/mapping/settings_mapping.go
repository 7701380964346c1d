package mapping

import (
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/parceldesk/ledger_core_app/internal/models"
)

// ToModelSystemSettings converts domain SystemSettings to a model SystemSettings
func ToModelSystemSettings(d domain.SystemSettings) models.SystemSettings {
	var lockDate *string
	if d.LockDate != nil {
		s := d.LockDate.String()
		lockDate = &s
	}
	return models.SystemSettings{
		LockDate:         lockDate,
		BaseCurrencyCode: d.BaseCurrencyCode,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSystemSettings converts model SystemSettings to domain SystemSettings
func ToDomainSystemSettings(m models.SystemSettings) domain.SystemSettings {
	var lockDate *domain.Date
	if m.LockDate != nil {
		d := domain.Date(*m.LockDate)
		lockDate = &d
	}
	return domain.SystemSettings{
		LockDate:         lockDate,
		BaseCurrencyCode: m.BaseCurrencyCode,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
