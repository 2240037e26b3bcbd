package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no customer matches the lookup.
	ErrNotFound = errors.New("customer not found")
	// ErrPhoneExists indicates the phone number is already registered.
	ErrPhoneExists = errors.New("phone already exists")
)

// Repository persists customers. Create assigns the sequential UID.
type Repository interface {
	Create(ctx context.Context, c Customer) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Resolve(ctx context.Context, ref string) (Customer, error)
	Update(ctx context.Context, c Customer) error
	ChangedSince(ctx context.Context, since time.Time) ([]Customer, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed customer repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const customerColumns = `id, customer_id, uid, name, phone, address, created_at`

// Create inserts a new customer and derives its UID from the assigned sequence.
func (r *PostgresRepository) Create(ctx context.Context, c Customer) (Customer, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return Customer{}, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE phone = $1)`, c.Phone).Scan(&exists); err != nil {
		return Customer{}, err
	}
	if exists {
		return Customer{}, ErrPhoneExists
	}

	var seq int64
	row := r.db.QueryRow(ctx, `INSERT INTO customers (id, customer_id, name, phone, address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING seq`, id, c.CustomerID, c.Name, c.Phone, c.Address, c.CreatedAt.UTC())
	if err := row.Scan(&seq); err != nil {
		return Customer{}, err
	}

	c.UID = fmt.Sprintf("CU-%04d", seq)
	if _, err := r.db.Exec(ctx, `UPDATE customers SET uid = $1 WHERE id = $2`, c.UID, id); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// List returns customers ordered newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

// Resolve finds a customer by external id, uid or exact name.
func (r *PostgresRepository) Resolve(ctx context.Context, ref string) (Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers
        WHERE customer_id = $1 OR uid = $1 OR name = $1 LIMIT 1`, ref)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return c, err
}

// Update persists mutable customer fields.
func (r *PostgresRepository) Update(ctx context.Context, c Customer) error {
	cmd, err := r.db.Exec(ctx, `UPDATE customers SET name = $1, phone = $2, address = $3 WHERE id = $4`,
		c.Name, c.Phone, c.Address, c.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ChangedSince returns customers created strictly after the watermark,
// ascending by creation time.
func (r *PostgresRepository) ChangedSince(ctx context.Context, since time.Time) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers
        WHERE created_at > $1 ORDER BY created_at ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func scanCustomers(rows pgx.Rows) ([]Customer, error) {
	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		c         Customer
	)
	if err := row.Scan(&id, &c.CustomerID, &c.UID, &c.Name, &c.Phone, &c.Address, &createdAt); err != nil {
		return Customer{}, err
	}
	c.ID = id.String()
	c.CreatedAt = createdAt.UTC()
	return c, nil
}
