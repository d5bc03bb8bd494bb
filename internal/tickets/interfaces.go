package tickets

import (
	"context"

	"github.com/thomas-vilte/zendesk-sync/internal/models"
)

// TicketUpdater applies a case status change to a ticket.
type TicketUpdater interface {
	UpdateTicket(ctx context.Context, ticketID int64, payload models.UpdatePayload) error
}
