package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	todosrepo "github.com/dmitrijs2005/gophtodo/internal/server/repositories/todos"
	usersrepo "github.com/dmitrijs2005/gophtodo/internal/server/repositories/users"
)

// --- in-memory fakes with call counters, to assert that gated mutations
// perform zero store writes when authorization fails ---

type fakeUsersRepo struct {
	users map[string]*models.User

	createCalls int
	updateCalls int
	deleteCalls int

	lastPatch models.UserPatch
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
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
	f.createCalls++
	user.ID = fmt.Sprintf("u-%d", f.createCalls)
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	f.updateCalls++
	f.lastPatch = patch
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
	f.deleteCalls++
	delete(f.users, id)
	return nil
}

type fakeTodosRepo struct {
	todos map[string]*models.Todo

	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeTodosRepo() *fakeTodosRepo {
	return &fakeTodosRepo{todos: map[string]*models.Todo{}}
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
	f.createCalls++
	todo.ID = fmt.Sprintf("t-%d", f.createCalls)
	f.todos[todo.ID] = todo
	return todo, nil
}

func (f *fakeTodosRepo) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	f.updateCalls++
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
	f.deleteCalls++
	delete(f.todos, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTodosRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), t: newFakeTodosRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todosrepo.Repository      { return m.t }

// newSQLMockDB returns a mock *sql.DB for the services that open a
// transaction; the fakes never touch it beyond Begin/Commit.
func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
