package todos

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
)

// Repository is the record-store boundary for todo records. Lookups for a
// missing row return common.ErrorNotFound; any other error is a store fault.
type Repository interface {
	GetAll(ctx context.Context) ([]*models.Todo, error)
	GetByID(ctx context.Context, id string) (*models.Todo, error)
	GetByUser(ctx context.Context, userID string) ([]*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, id string) error
}
