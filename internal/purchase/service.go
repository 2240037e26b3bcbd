package purchase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocerybag/grocerybag/internal/supplier"
)

// Service records stock purchases against suppliers.
type Service struct {
	repo      Repository
	suppliers *supplier.Service
}

// NewService builds a purchase service instance.
func NewService(repo Repository, suppliers *supplier.Service) *Service {
	return &Service{repo: repo, suppliers: suppliers}
}

// CreateInput captures a purchase entry form submission.
type CreateInput struct {
	SupplierRef  string
	BagSize      string
	Units        int
	PricePerUnit decimal.Decimal
	InvoiceImage string
}

// Create validates the entry, resolves the supplier and stores the purchase.
func (s *Service) Create(ctx context.Context, input CreateInput) (Purchase, error) {
	if input.SupplierRef == "" {
		return Purchase{}, errors.New("supplier_id required")
	}
	if input.Units <= 0 {
		return Purchase{}, errors.New("units must be positive")
	}
	if input.PricePerUnit.Sign() <= 0 {
		return Purchase{}, errors.New("price_per_unit must be positive")
	}

	sup, err := s.suppliers.Resolve(ctx, input.SupplierRef)
	if err != nil {
		return Purchase{}, err
	}

	now := time.Now().UTC()
	p := Purchase{
		ID:           uuid.New().String(),
		PurchaseID:   entryID("P", now),
		SupplierID:   sup.SupplierID,
		BagSize:      input.BagSize,
		Units:        input.Units,
		PricePerUnit: input.PricePerUnit,
		TotalAmount:  input.PricePerUnit.Mul(decimal.NewFromInt(int64(input.Units))),
		InvoiceImage: input.InvoiceImage,
		Date:         now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Purchase{}, err
	}
	return p, nil
}

// List returns recent purchases.
func (s *Service) List(ctx context.Context, limit int) ([]Purchase, error) {
	return s.repo.List(ctx, limit)
}

// Get fetches one purchase by external id.
func (s *Service) Get(ctx context.Context, ref string) (Purchase, error) {
	return s.repo.Get(ctx, ref)
}

// entryID derives the external id for an entry: {prefix}-{MM}{W}-{rand4},
// where W is the week-of-month of the entry date.
func entryID(prefix string, now time.Time) string {
	week := (now.Day()-1)/7 + 1
	return fmt.Sprintf("%s-%02d%d-%04d", prefix, int(now.Month()), week, 1000+rand.Intn(9000))
}
