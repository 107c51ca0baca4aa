package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/dkurganov/guestgate/internal/server/repositories/repomanager"
)

// SigninService verifies a presented email+phone pair against the stored
// network credential.
type SigninService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSigninService constructs a SigninService.
func NewSigninService(db *sql.DB, m repomanager.RepositoryManager) *SigninService {
	return &SigninService{db: db, repomanager: m}
}

// Verify returns nil when the stored credential value matches the presented
// phone exactly. An unknown username and a wrong phone are indistinguishable
// to the caller: both yield common.ErrorInvalidCredentials.
func (s *SigninService) Verify(ctx context.Context, email, phone string) error {
	credential, err := s.repomanager.Credentials(s.db).GetByUsername(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidCredentials
		}
		return fmt.Errorf("%w: fetching credential: %v", common.ErrorStorage, err)
	}

	// Exact string comparison: the stored value is the router-side shared
	// secret, no normalization or hashing applies.
	if credential.Value != phone {
		return common.ErrorInvalidCredentials
	}

	return nil
}
