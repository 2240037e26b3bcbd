package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no purchase matches the lookup.
var ErrNotFound = errors.New("purchase not found")

// Repository persists purchases.
type Repository interface {
	Create(ctx context.Context, p Purchase) error
	List(ctx context.Context, limit int) ([]Purchase, error)
	Get(ctx context.Context, ref string) (Purchase, error)
	ChangedSince(ctx context.Context, since time.Time) ([]Purchase, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed purchase repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const purchaseColumns = `id, purchase_id, supplier_id, bag_size, units, price_per_unit, total_amount, invoice_image, date`

// Create inserts a new purchase.
func (r *PostgresRepository) Create(ctx context.Context, p Purchase) error {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO purchases (id, purchase_id, supplier_id, bag_size, units, price_per_unit, total_amount, invoice_image, date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, p.PurchaseID, p.SupplierID, p.BagSize, p.Units, p.PricePerUnit, p.TotalAmount, p.InvoiceImage, p.Date.UTC())
	return err
}

// List returns recent purchases, newest first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Purchase, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT `+purchaseColumns+` FROM purchases ORDER BY date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPurchases(rows)
}

// Get fetches one purchase by external id.
func (r *PostgresRepository) Get(ctx context.Context, ref string) (Purchase, error) {
	row := r.db.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE purchase_id = $1`, ref)
	p, err := scanPurchase(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Purchase{}, ErrNotFound
	}
	return p, err
}

// ChangedSince returns purchases dated strictly after the watermark, ascending.
func (r *PostgresRepository) ChangedSince(ctx context.Context, since time.Time) ([]Purchase, error) {
	rows, err := r.db.Query(ctx, `SELECT `+purchaseColumns+` FROM purchases
        WHERE date > $1 ORDER BY date ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func scanPurchases(rows pgx.Rows) ([]Purchase, error) {
	var out []Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPurchase(row pgx.Row) (Purchase, error) {
	var (
		id   uuid.UUID
		date time.Time
		p    Purchase
	)
	if err := row.Scan(&id, &p.PurchaseID, &p.SupplierID, &p.BagSize, &p.Units, &p.PricePerUnit, &p.TotalAmount, &p.InvoiceImage, &date); err != nil {
		return Purchase{}, err
	}
	p.ID = id.String()
	p.Date = date.UTC()
	return p, nil
}
