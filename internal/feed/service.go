package feed

import (
	"context"
	"time"

	"github.com/grocerybag/grocerybag/internal/customer"
	"github.com/grocerybag/grocerybag/internal/purchase"
	"github.com/grocerybag/grocerybag/internal/sale"
	"github.com/grocerybag/grocerybag/internal/supplier"
)

// Payload is the incremental update feed: every record changed after the
// requested watermark, plus the server's own high-water mark for the next
// request. Collections are always present, empty or not.
type Payload struct {
	Since     string              `json:"since"`
	AsOf      string              `json:"as_of"`
	Suppliers []supplier.Supplier `json:"suppliers"`
	Customers []customer.Customer `json:"customers"`
	Purchases []purchase.Purchase `json:"purchases"`
	Sales     []sale.Sale         `json:"sales"`
}

// Service assembles the update feed from the four entity repositories.
type Service struct {
	suppliers supplier.Repository
	customers customer.Repository
	purchases purchase.Repository
	sales     sale.Repository
}

// NewService builds the feed service.
func NewService(suppliers supplier.Repository, customers customer.Repository, purchases purchase.Repository, sales sale.Repository) *Service {
	return &Service{suppliers: suppliers, customers: customers, purchases: purchases, sales: sales}
}

// Since gathers everything changed strictly after the watermark. The as_of
// mark is captured before querying so that a record written mid-assembly is
// delivered again on the next request rather than skipped.
func (s *Service) Since(ctx context.Context, since time.Time) (Payload, error) {
	asOf := time.Now().UTC()

	sup, err := s.suppliers.ChangedSince(ctx, since)
	if err != nil {
		return Payload{}, err
	}
	cus, err := s.customers.ChangedSince(ctx, since)
	if err != nil {
		return Payload{}, err
	}
	pur, err := s.purchases.ChangedSince(ctx, since)
	if err != nil {
		return Payload{}, err
	}
	sal, err := s.sales.ChangedSince(ctx, since)
	if err != nil {
		return Payload{}, err
	}

	if sup == nil {
		sup = []supplier.Supplier{}
	}
	if cus == nil {
		cus = []customer.Customer{}
	}
	if pur == nil {
		pur = []purchase.Purchase{}
	}
	if sal == nil {
		sal = []sale.Sale{}
	}

	return Payload{
		Since:     since.UTC().Format(time.RFC3339),
		AsOf:      asOf.Format(time.RFC3339Nano),
		Suppliers: sup,
		Customers: cus,
		Purchases: pur,
		Sales:     sal,
	}, nil
}
