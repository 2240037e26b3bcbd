package sync

import (
	"errors"
	"testing"
)

func TestMergeInsertsNewRecords(t *testing.T) {
	store := NewStore()

	res, err := store.Merge(Payload{
		Suppliers: []Record{
			{"supplier_id": "SU-260809-ab12", "name": "Ravi Wholesale"},
			{"supplier_id": "SU-260809-cd34", "name": "Meena Mills"},
		},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if res.Inserted != 2 || res.Updated != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if store.Len(CollectionSuppliers) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", store.Len(CollectionSuppliers))
	}
}

func TestMergeShallowMergesExistingRecord(t *testing.T) {
	store := NewStore()

	if _, err := store.Merge(Payload{
		Customers: []Record{{"customer_id": "CU-0001", "name": "Asha", "phone": "9000000001"}},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := store.Merge(Payload{
		Customers: []Record{{"customer_id": "CU-0001", "phone": "9000000009"}},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if res.Updated != 1 || res.Inserted != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	got, ok := store.Get(CollectionCustomers, "CU-0001")
	if !ok {
		t.Fatal("customer missing after merge")
	}
	if got["phone"] != "9000000009" {
		t.Fatalf("expected updated phone, got %v", got["phone"])
	}
	if got["name"] != "Asha" {
		t.Fatalf("expected name preserved, got %v", got["name"])
	}
	if store.Len(CollectionCustomers) != 1 {
		t.Fatalf("expected 1 customer, got %d", store.Len(CollectionCustomers))
	}
}

func TestMergeFallsBackToGenericID(t *testing.T) {
	store := NewStore()

	if _, err := store.Merge(Payload{
		Sales: []Record{{"id": "77", "total_amount": 500}},
	}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	if _, err := store.Merge(Payload{
		Sales: []Record{{"id": "77", "paid_amount": 200}},
	}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	if store.Len(CollectionSales) != 1 {
		t.Fatalf("expected records to collapse onto id, got %d", store.Len(CollectionSales))
	}
}

func TestMergeRejectsKeylessRecords(t *testing.T) {
	store := NewStore()

	res, err := store.Merge(Payload{
		Purchases: []Record{
			{"purchase_id": "P-082-1234", "units": 10},
			{"units": 5},
		},
	})
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	if res.Inserted != 1 || res.Rejected != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if store.Len(CollectionPurchases) != 1 {
		t.Fatalf("valid record should still apply, got %d", store.Len(CollectionPurchases))
	}
}

func TestMergeEmptyPayloadKeepsVersion(t *testing.T) {
	store := NewStore()

	if _, err := store.Merge(Payload{
		Suppliers: []Record{{"supplier_id": "SU-1", "name": "A"}},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	v := store.Version()

	if _, err := store.Merge(Payload{}); err != nil {
		t.Fatalf("empty merge: %v", err)
	}
	if store.Version() != v {
		t.Fatalf("version changed on empty payload: %d -> %d", v, store.Version())
	}
}

func TestMergeRepeatedDeliveryConverges(t *testing.T) {
	store := NewStore()
	payload := Payload{
		Sales: []Record{{"sale_id": "S-082-1111", "total_amount": 500, "paid_amount": 300}},
	}

	for i := 0; i < 3; i++ {
		if _, err := store.Merge(payload); err != nil {
			t.Fatalf("merge %d: %v", i, err)
		}
	}

	if store.Len(CollectionSales) != 1 {
		t.Fatalf("expected 1 sale after repeated delivery, got %d", store.Len(CollectionSales))
	}
	got, _ := store.Get(CollectionSales, "S-082-1111")
	if got["paid_amount"] != 300 {
		t.Fatalf("expected paid_amount 300, got %v", got["paid_amount"])
	}
}

func TestSnapshotReturnsCopies(t *testing.T) {
	store := NewStore()
	if _, err := store.Merge(Payload{
		Suppliers: []Record{{"supplier_id": "SU-1", "name": "A"}},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	snap := store.Snapshot(CollectionSuppliers)
	snap[0]["name"] = "mutated"

	got, _ := store.Get(CollectionSuppliers, "SU-1")
	if got["name"] != "A" {
		t.Fatalf("snapshot mutation leaked into store: %v", got["name"])
	}
}
