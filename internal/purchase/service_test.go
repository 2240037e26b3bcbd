package purchase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grocerybag/grocerybag/internal/supplier"
)

func newTestService(t *testing.T) (*Service, *supplier.Service) {
	t.Helper()
	suppliers := supplier.NewService(supplier.NewMemoryRepository())
	return NewService(NewMemoryRepository(), suppliers), suppliers
}

func TestCreateComputesTotal(t *testing.T) {
	svc, suppliers := newTestService(t)
	ctx := context.Background()

	sup, err := suppliers.Create(ctx, supplier.CreateInput{Name: "Ravi Wholesale", Phone: "9000000010"})
	if err != nil {
		t.Fatalf("seed supplier: %v", err)
	}

	p, err := svc.Create(ctx, CreateInput{
		SupplierRef:  sup.SupplierID,
		BagSize:      "10kg",
		Units:        12,
		PricePerUnit: decimal.NewFromInt(80),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !p.TotalAmount.Equal(decimal.NewFromInt(960)) {
		t.Fatalf("expected total 960, got %s", p.TotalAmount)
	}
	if p.SupplierID != sup.SupplierID {
		t.Fatalf("expected supplier id %s, got %s", sup.SupplierID, p.SupplierID)
	}
}

func TestCreateUnknownSupplier(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		SupplierRef:  "SU-000000-none",
		Units:        1,
		PricePerUnit: decimal.NewFromInt(10),
	})
	if !errors.Is(err, supplier.ErrNotFound) {
		t.Fatalf("expected supplier.ErrNotFound, got %v", err)
	}
}

func TestCreateRejectsNonPositiveValues(t *testing.T) {
	svc, suppliers := newTestService(t)
	ctx := context.Background()

	sup, err := suppliers.Create(ctx, supplier.CreateInput{Name: "Ravi Wholesale", Phone: "9000000010"})
	if err != nil {
		t.Fatalf("seed supplier: %v", err)
	}

	if _, err := svc.Create(ctx, CreateInput{SupplierRef: sup.SupplierID, Units: 0, PricePerUnit: decimal.NewFromInt(10)}); err == nil {
		t.Fatal("expected error for zero units")
	}
	if _, err := svc.Create(ctx, CreateInput{SupplierRef: sup.SupplierID, Units: 3, PricePerUnit: decimal.Zero}); err == nil {
		t.Fatal("expected error for zero price")
	}
}

func TestEntryIDWeekOfMonth(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "P-081-"},
		{7, "P-081-"},
		{8, "P-082-"},
		{29, "P-085-"},
	}
	for _, tc := range cases {
		now := time.Date(2026, 8, tc.day, 0, 0, 0, 0, time.UTC)
		id := entryID("P", now)
		if id[:6] != tc.want {
			t.Errorf("day %d: expected prefix %s, got %s", tc.day, tc.want, id)
		}
	}
}
