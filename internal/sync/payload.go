package sync

// Collection names carried by the update feed.
const (
	CollectionSuppliers = "suppliers"
	CollectionCustomers = "customers"
	CollectionPurchases = "purchases"
	CollectionSales     = "sales"
)

// Record is one schemaless entity row from the update feed.
type Record map[string]any

// Payload is the incremental update message returned by the server: for each
// collection, only the records changed since the requested watermark. AsOf is
// the server's high-water mark and becomes the next checkpoint.
type Payload struct {
	Since     string   `json:"since,omitempty"`
	AsOf      string   `json:"as_of,omitempty"`
	Suppliers []Record `json:"suppliers"`
	Customers []Record `json:"customers"`
	Purchases []Record `json:"purchases"`
	Sales     []Record `json:"sales"`
}

// Empty reports whether the payload carries no records at all.
func (p Payload) Empty() bool {
	return len(p.Suppliers) == 0 && len(p.Customers) == 0 && len(p.Purchases) == 0 && len(p.Sales) == 0
}

func (p Payload) collections() map[string][]Record {
	return map[string][]Record{
		CollectionSuppliers: p.Suppliers,
		CollectionCustomers: p.Customers,
		CollectionPurchases: p.Purchases,
		CollectionSales:     p.Sales,
	}
}
