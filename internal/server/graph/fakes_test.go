package graph

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/config"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	todosrepo "github.com/dmitrijs2005/gophtodo/internal/server/repositories/todos"
	usersrepo "github.com/dmitrijs2005/gophtodo/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
	"github.com/graphql-go/graphql"
)

const testSecret = "test-secret"

// in-memory stores backing the services under the schema

type fakeUsersRepo struct {
	users map[string]*models.User
	seq   int
}

func (f *fakeUsersRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var result []*models.User
	for _, u := range f.users {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.seq++
	user.ID = fmt.Sprintf("u-%d", f.seq)
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return u, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeTodosRepo struct {
	todos map[string]*models.Todo
	seq   int
}

func (f *fakeTodosRepo) GetAll(ctx context.Context) ([]*models.Todo, error) {
	var result []*models.Todo
	for _, td := range f.todos {
		result = append(result, td)
	}
	return result, nil
}

func (f *fakeTodosRepo) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	if td, ok := f.todos[id]; ok {
		return td, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeTodosRepo) GetByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	var result []*models.Todo
	for _, td := range f.todos {
		if td.UserID == userID {
			result = append(result, td)
		}
	}
	return result, nil
}

func (f *fakeTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	f.seq++
	todo.ID = fmt.Sprintf("t-%d", f.seq)
	f.todos[todo.ID] = todo
	return todo, nil
}

func (f *fakeTodosRepo) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	td, ok := f.todos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Title != nil {
		td.Title = *patch.Title
	}
	if patch.Completed != nil {
		td.Completed = *patch.Completed
	}
	return td, nil
}

func (f *fakeTodosRepo) Delete(ctx context.Context, id string) error {
	delete(f.todos, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTodosRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todosrepo.Repository      { return m.t }

// newTestSchema wires the full schema over fake stores. The sqlmock handle
// only serves the registration transaction's Begin/Commit/Rollback.
func newTestSchema(t *testing.T) (graphql.Schema, *fakeRepoManager) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 8; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{users: map[string]*models.User{}},
		t: &fakeTodosRepo{todos: map[string]*models.Todo{}},
	}
	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	resolver := NewResolver(
		services.NewUserService(db, rm, cfg),
		services.NewTodoService(db, rm),
		logger,
	)

	schema, err := NewSchema(resolver)
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	return schema, rm
}

// exec runs one GraphQL request against the schema.
func exec(ctx context.Context, schema graphql.Schema, query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

// data extracts the result payload as a map, failing the test on resolution
// errors.
func data(t *testing.T, result *graphql.Result) map[string]interface{} {
	t.Helper()
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	m, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %#v", result.Data)
	}
	return m
}

// wantError asserts the result failed with the given message.
func wantError(t *testing.T, result *graphql.Result, msg string) {
	t.Helper()
	if len(result.Errors) == 0 {
		t.Fatalf("expected error %q, got none (data: %v)", msg, result.Data)
	}
	for _, e := range result.Errors {
		if e.Message == msg {
			return
		}
	}
	t.Fatalf("expected error %q, got %v", msg, result.Errors)
}
