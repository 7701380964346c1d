package domain

// IssueSeverity classifies a health issue by its effect on period closing.
type IssueSeverity string

const (
	// SeverityCritical issues block period locking.
	SeverityCritical IssueSeverity = "CRITICAL"
	// SeverityWarning issues are advisory and never block locking.
	SeverityWarning IssueSeverity = "WARNING"
)

// IssueType identifies the structural problem a health issue reports.
type IssueType string

const (
	IssueUnbalancedEntry  IssueType = "UNBALANCED_ENTRY"
	IssueDuplicateCOA     IssueType = "DUPLICATE_COA"
	IssueUnpostedDocument IssueType = "UNPOSTED_DOCUMENT"
)

// HealthIssue is a single finding from the ledger health audit.
type HealthIssue struct {
	Severity IssueSeverity  `json:"severity"`
	Type     IssueType      `json:"type"`
	Message  string         `json:"message"`
	Meta     map[string]any `json:"meta,omitempty"` // Free-form payload, e.g. the duplicate account group
}

// HasCritical reports whether any issue in the list blocks period locking.
func HasCritical(issues []HealthIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
