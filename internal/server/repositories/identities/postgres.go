package identities

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/dkurganov/guestgate/internal/dbx"
	"github.com/dkurganov/guestgate/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the registrant row. A unique violation on email or phone is
// reported as common.ErrorDuplicateContact so concurrent registrations that
// slip past the advisory pre-check still fail with the right kind.
func (r *PostgresRepository) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {

	query :=
		`INSERT INTO portal_users (full_name, company, email, phone)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		identity.FullName, identity.Company, identity.Email, identity.Phone).
		Scan(&identity.ID, &identity.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorDuplicateContact
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (r *PostgresRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM portal_users WHERE email = $1 OR phone = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

// List returns all registrants, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Identity, error) {
	query :=
		`SELECT id, full_name, company, email, phone, created_at
		 FROM portal_users
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Identity
	for rows.Next() {
		identity := &models.Identity{}
		if err := rows.Scan(&identity.ID, &identity.FullName, &identity.Company,
			&identity.Email, &identity.Phone, &identity.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM portal_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
