package services

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/parceldesk/ledger_core_app/internal/dto"
)

// ClosingSvcFacade synthesizes period-closing journals.
type ClosingSvcFacade interface {
	// GenerateClosingJournal builds the DRAFT journal that zeroes net revenue and
	// expense activity of the period into the retained earnings account. It
	// returns (nil, nil) when no revenue or expense account had activity. The
	// journal is handed back unpersisted; the caller posts it through the normal
	// validation path.
	GenerateClosingJournal(ctx context.Context, branchID string, req dto.GenerateClosingRequest, userID string) (*domain.Journal, error)
}
