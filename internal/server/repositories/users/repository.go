package users

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
)

// Repository is the record-store boundary for user records. Lookups for a
// missing row return common.ErrorNotFound; any other error is a store fault.
type Repository interface {
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
