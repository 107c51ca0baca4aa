package credentials

import (
	"context"
	"database/sql"
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

// Create inserts the radcheck row. The username namespace is shared with
// rows provisioned outside the portal; a unique violation maps to
// common.ErrorDuplicateCredential.
func (r *PostgresRepository) Create(ctx context.Context, credential *models.Credential) error {

	query :=
		`INSERT INTO radcheck (username, attribute, op, value)
         VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		credential.Username, credential.Attribute, credential.Operator, credential.Value)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorDuplicateCredential
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// GetByUsername fetches the portal credential row, i.e. the one carrying the
// Cleartext-Password attribute.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Credential, error) {
	query :=
		`SELECT username, attribute, op, value FROM radcheck
		 WHERE username = $1 AND attribute = $2
		 `

	credential := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, username, models.CredentialAttribute).
		Scan(&credential.Username, &credential.Attribute, &credential.Operator, &credential.Value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return credential, nil
}

func (r *PostgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM radcheck WHERE username = $1
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}
