package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records bags sold to a customer, including how much of the total has
// been paid and what remains outstanding on the customer's ledger.
type Sale struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	CustomerID   string          `json:"customer_id"`
	BagSize      string          `json:"bag_size"`
	Units        int             `json:"units"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	InvoiceImage string          `json:"invoice_image,omitempty"`
	Date         time.Time       `json:"date"`
}
