package sale

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocerybag/grocerybag/internal/customer"
	"github.com/grocerybag/grocerybag/internal/transaction"
)

// ErrInvalidPaymentType indicates an unrecognised payment type.
var ErrInvalidPaymentType = errors.New("payment_type must be cash or online")

// Service records sales against customers and logs payments received.
type Service struct {
	repo      Repository
	customers *customer.Service
	txlog     transaction.Log
}

// NewService builds a sale service instance.
func NewService(repo Repository, customers *customer.Service, txlog transaction.Log) *Service {
	return &Service{repo: repo, customers: customers, txlog: txlog}
}

// CreateInput captures a sale entry form submission. One sale is recorded per
// line item of a multi-item entry.
type CreateInput struct {
	CustomerRef  string
	BagSize      string
	Units        int
	PricePerUnit decimal.Decimal
	PaidAmount   decimal.Decimal
	PaymentType  string
	InvoiceImage string
}

// Create validates the entry, resolves the customer, stores the sale and logs
// a payment transaction when any amount was paid up front. Failures are
// returned to the caller; a sale is never reported as saved unless it is.
func (s *Service) Create(ctx context.Context, input CreateInput) (Sale, error) {
	if input.CustomerRef == "" {
		return Sale{}, errors.New("customer_id required")
	}
	if input.Units <= 0 {
		return Sale{}, errors.New("units must be positive")
	}
	if input.PricePerUnit.Sign() <= 0 {
		return Sale{}, errors.New("price_per_unit must be positive")
	}
	if input.PaidAmount.Sign() < 0 {
		return Sale{}, errors.New("paid_amount cannot be negative")
	}

	paymentType := input.PaymentType
	if paymentType == "" {
		paymentType = transaction.TypeCash
	}
	if paymentType != transaction.TypeCash && paymentType != transaction.TypeOnline {
		return Sale{}, ErrInvalidPaymentType
	}

	cust, err := s.customers.Resolve(ctx, input.CustomerRef)
	if err != nil {
		return Sale{}, err
	}

	total := input.PricePerUnit.Mul(decimal.NewFromInt(int64(input.Units)))

	now := time.Now().UTC()
	sl := Sale{
		ID:           uuid.New().String(),
		SaleID:       entryID("S", now),
		CustomerID:   cust.CustomerID,
		BagSize:      input.BagSize,
		Units:        input.Units,
		TotalAmount:  total,
		PaidAmount:   input.PaidAmount,
		Outstanding:  total.Sub(input.PaidAmount),
		InvoiceImage: input.InvoiceImage,
		Date:         now,
	}

	if err := s.repo.Create(ctx, sl); err != nil {
		return Sale{}, err
	}

	if input.PaidAmount.Sign() > 0 {
		err := s.txlog.Record(ctx, transaction.Transaction{
			ID:          uuid.New().String(),
			Type:        paymentType,
			Amount:      input.PaidAmount,
			RelatedType: transaction.RelatedSale,
			RelatedID:   sl.SaleID,
			Note:        fmt.Sprintf("Sale payment by Customer %s", cust.CustomerID),
			Date:        now,
		})
		if err != nil {
			return Sale{}, err
		}
	}

	return sl, nil
}

// List returns recent sales.
func (s *Service) List(ctx context.Context, limit int) ([]Sale, error) {
	return s.repo.List(ctx, limit)
}

// Get fetches one sale by external id.
func (s *Service) Get(ctx context.Context, ref string) (Sale, error) {
	return s.repo.Get(ctx, ref)
}

// UpdateInput holds the mutable sale fields; nil means leave unchanged.
type UpdateInput struct {
	BagSize    *string
	Units      *int
	PaidAmount *decimal.Decimal
}

// Update applies a partial update and recomputes the outstanding balance.
func (s *Service) Update(ctx context.Context, ref string, input UpdateInput) (Sale, error) {
	sl, err := s.repo.Get(ctx, ref)
	if err != nil {
		return Sale{}, err
	}
	if input.BagSize != nil {
		sl.BagSize = *input.BagSize
	}
	if input.Units != nil {
		if *input.Units <= 0 {
			return Sale{}, errors.New("units must be positive")
		}
		// Preserve the original per-unit price when the quantity changes.
		perUnit := sl.TotalAmount.Div(decimal.NewFromInt(int64(sl.Units)))
		sl.Units = *input.Units
		sl.TotalAmount = perUnit.Mul(decimal.NewFromInt(int64(sl.Units)))
	}
	if input.PaidAmount != nil {
		if input.PaidAmount.Sign() < 0 {
			return Sale{}, errors.New("paid_amount cannot be negative")
		}
		sl.PaidAmount = *input.PaidAmount
	}
	sl.Outstanding = sl.TotalAmount.Sub(sl.PaidAmount)

	if err := s.repo.Update(ctx, sl); err != nil {
		return Sale{}, err
	}
	return sl, nil
}

// entryID derives the external id for an entry: {prefix}-{MM}{W}-{rand4},
// where W is the week-of-month of the entry date.
func entryID(prefix string, now time.Time) string {
	week := (now.Day()-1)/7 + 1
	return fmt.Sprintf("%s-%02d%d-%04d", prefix, int(now.Month()), week, 1000+rand.Intn(9000))
}
