package interfaces

import "context"

// INotifier sends a WhatsApp message to a customer phone (E.164-ish digits).
//
// Every caller treats a send failure as best-effort: it is logged and never
// rolls back sale state or the ledger.

type INotifier interface {
	Send(ctx context.Context, phone, message string) error
}
