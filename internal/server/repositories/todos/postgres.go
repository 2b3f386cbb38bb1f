// Package todos provides the PostgreSQL-backed repository for todo records.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Todo, error) {
	query :=
		`SELECT id, title, completed, user_id, created_at FROM todos
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	query :=
		`SELECT id, title, completed, user_id, created_at FROM todos
		 WHERE id = $1
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.UserID, &todo.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// GetByUser returns every todo whose owner reference equals userID; the
// result is empty (not an error) when there are none.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	query :=
		`SELECT id, title, completed, user_id, created_at FROM todos
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// Create inserts a new todo record. The repository assigns the identifier.
func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO todos (id, title, completed, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Title, todo.Completed, todo.UserID).Scan(&todo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Update applies a partial update; nil patch fields keep the stored value.
// Returns common.ErrorNotFound when no row has the given id.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	query :=
		`UPDATE todos SET
		   title     = COALESCE($2, title),
		   completed = COALESCE($3, completed)
		 WHERE id = $1
		 RETURNING id, title, completed, user_id, created_at
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, patch.Title, patch.Completed).
		Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.UserID, &todo.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Delete removes the todo row. Deleting an id that does not exist is not an
// error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func collect(rows *sql.Rows) ([]*models.Todo, error) {
	var result []*models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.Title, &item.Completed, &item.UserID, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
