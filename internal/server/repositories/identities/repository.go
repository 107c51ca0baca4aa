package identities

import (
	"context"

	"github.com/dkurganov/guestgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, identity *models.Identity) (*models.Identity, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	List(ctx context.Context) ([]*models.Identity, error)
	Count(ctx context.Context) (int64, error)
}
