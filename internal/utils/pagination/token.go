package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from a journal date and creation time.
// This is used for consistent keyset pagination across repositories.
func EncodeToken(journalDate domain.Date, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", journalDate.String(), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into journal date and creation time.
func DecodeToken(token string) (domain.Date, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	tokenStr := string(decodedBytes)
	parts := strings.SplitN(tokenStr, "|", 2)
	if len(parts) != 2 {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	journalDate, err := domain.ParseDate(parts[0])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (journal date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return journalDate, createdAt, nil
}
