package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
)

// TodoInput is the payload accepted by Add.
type TodoInput struct {
	Title     string
	Completed bool
}

// TodoService provides todo CRUD. None of its mutations consult the role
// gate: any caller may create, change or delete any todo. Only Add checks
// anything — the owner must exist at creation time.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService bound to the given repositories.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// GetAll returns every todo record.
func (s *TodoService) GetAll(ctx context.Context) ([]*models.Todo, error) {
	return s.repomanager.Todos(s.db).GetAll(ctx)
}

// GetByID returns the todo, or nil with no error when the id does not exist.
func (s *TodoService) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	todo, err := s.repomanager.Todos(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return todo, nil
}

// GetByUser returns the todos owned by userID; empty when there are none or
// the user itself is unknown.
func (s *TodoService) GetByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	return s.repomanager.Todos(s.db).GetByUser(ctx, userID)
}

// Add creates a todo owned by userID. The owner must exist at creation
// time; a missing owner fails with common.ErrorNotFound. It is not
// re-checked afterwards.
func (s *TodoService) Add(ctx context.Context, input TodoInput, userID string) (*models.Todo, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	todo := &models.Todo{Title: input.Title, Completed: input.Completed, UserID: userID}
	return s.repomanager.Todos(s.db).Create(ctx, todo)
}

// Update applies a partial update. Unguarded: no ownership or role check.
// Returns nil with no error when the id no longer exists.
func (s *TodoService) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	todo, err := s.repomanager.Todos(s.db).Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return todo, nil
}

// Delete removes a todo. Unguarded: no ownership or role check.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Todos(s.db).Delete(ctx, id)
}
