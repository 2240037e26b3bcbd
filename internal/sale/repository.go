package sale

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no sale matches the lookup.
var ErrNotFound = errors.New("sale not found")

// Repository persists sales.
type Repository interface {
	Create(ctx context.Context, s Sale) error
	List(ctx context.Context, limit int) ([]Sale, error)
	Get(ctx context.Context, ref string) (Sale, error)
	Update(ctx context.Context, s Sale) error
	ChangedSince(ctx context.Context, since time.Time) ([]Sale, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed sale repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const saleColumns = `id, sale_id, customer_id, bag_size, units, total_amount, paid_amount, outstanding, invoice_image, date`

// Create inserts a new sale.
func (r *PostgresRepository) Create(ctx context.Context, s Sale) error {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO sales (id, sale_id, customer_id, bag_size, units, total_amount, paid_amount, outstanding, invoice_image, date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, s.SaleID, s.CustomerID, s.BagSize, s.Units, s.TotalAmount, s.PaidAmount, s.Outstanding, s.InvoiceImage, s.Date.UTC())
	return err
}

// List returns recent sales, newest first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Sale, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

// Get fetches one sale by external id.
func (r *PostgresRepository) Get(ctx context.Context, ref string) (Sale, error) {
	row := r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1`, ref)
	s, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, ErrNotFound
	}
	return s, err
}

// Update persists mutable sale fields.
func (r *PostgresRepository) Update(ctx context.Context, s Sale) error {
	cmd, err := r.db.Exec(ctx, `UPDATE sales SET bag_size = $1, units = $2, total_amount = $3, paid_amount = $4, outstanding = $5 WHERE id = $6`,
		s.BagSize, s.Units, s.TotalAmount, s.PaidAmount, s.Outstanding, s.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ChangedSince returns sales dated strictly after the watermark, ascending.
func (r *PostgresRepository) ChangedSince(ctx context.Context, since time.Time) ([]Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales
        WHERE date > $1 ORDER BY date ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]Sale, error) {
	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (Sale, error) {
	var (
		id   uuid.UUID
		date time.Time
		s    Sale
	)
	if err := row.Scan(&id, &s.SaleID, &s.CustomerID, &s.BagSize, &s.Units, &s.TotalAmount, &s.PaidAmount, &s.Outstanding, &s.InvoiceImage, &date); err != nil {
		return Sale{}, err
	}
	s.ID = id.String()
	s.Date = date.UTC()
	return s, nil
}
