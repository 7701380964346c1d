package dto

import "github.com/parceldesk/ledger_core_app/internal/core/domain"

// AuditReportResponse is the result of a ledger health audit run.
type AuditReportResponse struct {
	Issues        []domain.HealthIssue `json:"issues"`
	CriticalCount int                  `json:"criticalCount"`
	WarningCount  int                  `json:"warningCount"`
	CanLockPeriod bool                 `json:"canLockPeriod"`
}

// ToAuditReportResponse aggregates the issue list into a report.
func ToAuditReportResponse(issues []domain.HealthIssue) AuditReportResponse {
	report := AuditReportResponse{Issues: issues}
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityCritical:
			report.CriticalCount++
		case domain.SeverityWarning:
			report.WarningCount++
		}
	}
	report.CanLockPeriod = report.CriticalCount == 0
	return report
}
