package ports

import (
	"context"

	"github.com/tms-tools/supporthub/internal/domain/models"
)

// TicketStore persists string-keyed rows to the spreadsheet backend. The
// store owns column ordering and header reconciliation; callers only supply
// the row mapping.
type TicketStore interface {
	AppendTicket(ctx context.Context, row map[string]string) error
	AppendLog(ctx context.Context, row map[string]string) error
	AppendEvaluation(ctx context.Context, row map[string]string) error
	ListTickets(ctx context.Context, limit int) ([]map[string]string, error)
}

// UserStore looks up and updates users worksheet rows keyed by email.
type UserStore interface {
	GetRole(ctx context.Context, email string) (string, error)
	UpsertUser(ctx context.Context, user models.User) error
}
