package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLog implements Log using PostgreSQL.
type PostgresLog struct {
	db *pgxpool.Pool
}

// NewPostgresLog builds a Postgres-backed transaction log.
func NewPostgresLog(db *pgxpool.Pool) *PostgresLog {
	return &PostgresLog{db: db}
}

const txColumns = `id, type, amount, related_type, related_id, note, date`

// Record inserts a transaction entry.
func (l *PostgresLog) Record(ctx context.Context, t Transaction) error {
	if t.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	_, err = l.db.Exec(ctx, `INSERT INTO transactions (id, type, amount, related_type, related_id, note, date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`, id, t.Type, t.Amount, t.RelatedType, t.RelatedID, t.Note, t.Date.UTC())
	return err
}

// ListSince returns entries dated strictly after the watermark, ascending.
func (l *PostgresLog) ListSince(ctx context.Context, since time.Time) ([]Transaction, error) {
	rows, err := l.db.Query(ctx, `SELECT `+txColumns+` FROM transactions
        WHERE date > $1 ORDER BY date ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByRelated returns entries tied to a specific sale or purchase.
func (l *PostgresLog) ListByRelated(ctx context.Context, relatedType, relatedID string) ([]Transaction, error) {
	rows, err := l.db.Query(ctx, `SELECT `+txColumns+` FROM transactions
        WHERE related_type = $1 AND related_id = $2 ORDER BY date ASC`, relatedType, relatedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	var out []Transaction
	for rows.Next() {
		var (
			id   uuid.UUID
			date time.Time
			t    Transaction
		)
		if err := rows.Scan(&id, &t.Type, &t.Amount, &t.RelatedType, &t.RelatedID, &t.Note, &date); err != nil {
			return nil, err
		}
		t.ID = id.String()
		t.Date = date.UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}
