package supplier

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no supplier matches the lookup.
var ErrNotFound = errors.New("supplier not found")

// Repository persists suppliers.
type Repository interface {
	Create(ctx context.Context, s Supplier) error
	List(ctx context.Context) ([]Supplier, error)
	Resolve(ctx context.Context, ref string) (Supplier, error)
	Update(ctx context.Context, s Supplier) error
	ChangedSince(ctx context.Context, since time.Time) ([]Supplier, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed supplier repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const supplierColumns = `id, supplier_id, name, phone, address, created_at`

// Create inserts a new supplier.
func (r *PostgresRepository) Create(ctx context.Context, s Supplier) error {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO suppliers (id, supplier_id, name, phone, address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, id, s.SupplierID, s.Name, s.Phone, s.Address, s.CreatedAt.UTC())
	return err
}

// List returns suppliers ordered newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSuppliers(rows)
}

// Resolve finds a supplier by external id or exact name.
func (r *PostgresRepository) Resolve(ctx context.Context, ref string) (Supplier, error) {
	row := r.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers
        WHERE supplier_id = $1 OR name = $1 LIMIT 1`, ref)
	s, err := scanSupplier(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Supplier{}, ErrNotFound
	}
	return s, err
}

// Update persists mutable supplier fields.
func (r *PostgresRepository) Update(ctx context.Context, s Supplier) error {
	cmd, err := r.db.Exec(ctx, `UPDATE suppliers SET name = $1, phone = $2, address = $3 WHERE id = $4`,
		s.Name, s.Phone, s.Address, s.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ChangedSince returns suppliers created strictly after the watermark,
// ascending by creation time.
func (r *PostgresRepository) ChangedSince(ctx context.Context, since time.Time) ([]Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers
        WHERE created_at > $1 ORDER BY created_at ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSuppliers(rows)
}

func scanSuppliers(rows pgx.Rows) ([]Supplier, error) {
	var out []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSupplier(row pgx.Row) (Supplier, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		s         Supplier
	)
	if err := row.Scan(&id, &s.SupplierID, &s.Name, &s.Phone, &s.Address, &createdAt); err != nil {
		return Supplier{}, err
	}
	s.ID = id.String()
	s.CreatedAt = createdAt.UTC()
	return s, nil
}
