package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bag sizes traded by the business.
const (
	BagSize1kg  = "1kg"
	BagSize5kg  = "5kg"
	BagSize10kg = "10kg"
)

// Purchase records stock bought in from a supplier.
type Purchase struct {
	ID           string          `json:"id"`
	PurchaseID   string          `json:"purchase_id"`
	SupplierID   string          `json:"supplier_id"`
	BagSize      string          `json:"bag_size"`
	Units        int             `json:"units"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InvoiceImage string          `json:"invoice_image,omitempty"`
	Date         time.Time       `json:"date"`
}
