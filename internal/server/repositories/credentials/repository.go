package credentials

import (
	"context"

	"github.com/dkurganov/guestgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, credential *models.Credential) error
	GetByUsername(ctx context.Context, username string) (*models.Credential, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
