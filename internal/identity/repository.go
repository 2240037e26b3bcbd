package identity

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
	// ErrNotFound indicates no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrPhoneExists indicates the phone number is already registered.
	ErrPhoneExists = errors.New("phone already exists")
)

// Repository persists users. Create assigns the sequential UID.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByUID(ctx context.Context, uid string) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user and derives its UID from the assigned sequence.
func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return User{}, err
	}

	if _, err := r.FindByPhone(ctx, user.Phone); err == nil {
		return User{}, ErrPhoneExists
	}

	var seq int64
	row := r.db.QueryRow(ctx, `INSERT INTO users (id, phone, role, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5) RETURNING seq`, userID, user.Phone, user.Role, user.PasswordHash, user.CreatedAt.UTC())
	if err := row.Scan(&seq); err != nil {
		return User{}, err
	}

	user.UID = fmt.Sprintf("%s-%04d", UIDPrefix(user.Role), seq)
	if _, err := r.db.Exec(ctx, `UPDATE users SET uid = $1 WHERE id = $2`, user.UID, userID); err != nil {
		return User{}, err
	}
	return user, nil
}

// FindByPhone fetches a user by phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	return r.findOne(ctx, `SELECT id, uid, phone, role, password_hash, created_at FROM users WHERE phone = $1`, phone)
}

// FindByUID fetches a user by its issued identifier.
func (r *PostgresRepository) FindByUID(ctx context.Context, uid string) (User, error) {
	return r.findOne(ctx, `SELECT id, uid, phone, role, password_hash, created_at FROM users WHERE uid = $1`, uid)
}

func (r *PostgresRepository) findOne(ctx context.Context, sql string, arg any) (User, error) {
	row := r.db.QueryRow(ctx, sql, arg)
	var (
		id        uuid.UUID
		createdAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.UID, &user.Phone, &user.Role, &user.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
