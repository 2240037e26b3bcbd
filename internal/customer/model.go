package customer

import "time"

// Customer represents a buyer with a ledger of sales against their account.
type Customer struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	UID        string    `json:"uid"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
}
