package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Payment/entry types recorded in the transaction log.
const (
	TypeCash    = "cash"
	TypeOnline  = "online"
	TypeExpense = "expense"
)

// Related record kinds.
const (
	RelatedSale     = "sale"
	RelatedPurchase = "purchase"
	RelatedOther    = "other"
)

// ErrInvalidAmount occurs when a non-positive amount is recorded.
var ErrInvalidAmount = errors.New("amount must be positive")

// Transaction is a single money movement tied to a sale, purchase or expense.
type Transaction struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	RelatedType string          `json:"related_type"`
	RelatedID   string          `json:"related_id"`
	Note        string          `json:"note"`
	Date        time.Time       `json:"date"`
}

// Log defines the contract implemented by transaction backends.
type Log interface {
	Record(ctx context.Context, t Transaction) error
	ListSince(ctx context.Context, since time.Time) ([]Transaction, error)
	ListByRelated(ctx context.Context, relatedType, relatedID string) ([]Transaction, error)
}
