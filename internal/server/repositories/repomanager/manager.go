package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkurganov/guestgate/internal/dbx"
	"github.com/dkurganov/guestgate/internal/server/repositories/accounting"
	"github.com/dkurganov/guestgate/internal/server/repositories/credentials"
	"github.com/dkurganov/guestgate/internal/server/repositories/identities"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Accounting(db dbx.DBTX) accounting.Repository
}
