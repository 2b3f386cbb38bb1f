// Package services contains server-side business logic. This file implements
// UserService: registration, login with session-token issuance, and the
// admin-gated user mutations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/config"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
)

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthPayload bundles a freshly minted session token with the account it
// belongs to; returned by Login.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService provides account-related operations:
// - Register: create accounts (hashing the password)
// - Login: verify credentials and mint a session token
// - GetAll/GetByID: plain lookups
// - Update/Delete: admin-gated mutations
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// GetAll returns every user record.
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).GetAll(ctx)
}

// GetByID returns the user, or nil with no error when the id does not
// exist: a missing user is an empty result, not a failure.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Register creates a new account. The email must be unused; the password is
// stored as a bcrypt hash. The caller-supplied role is stored verbatim
// (default "user") — nothing here prevents self-assigning "admin".
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	role := input.Role
	if role == "" {
		role = common.RoleUser
	}

	user := &models.User{Name: input.Name, Email: input.Email, Password: hash, Role: role}

	// Uniqueness check and insert run in one transaction; the unique index
	// on email is the backstop for anything that slips through.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, input.Email)
		if err == nil {
			return common.ErrorConflict
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, user)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the email/password pair and, on success, returns the user
// together with a session token embedding the user's id and role. An unknown
// email and a wrong password produce the identical failure so a caller
// cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingCredentials
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthPayload{Token: token, User: user}, nil
}

// Update applies a partial update to a user record. Admin only; the gate is
// consulted before any store access. A supplied password is re-hashed.
// Returns nil with no error when the id no longer exists.
func (s *UserService) Update(ctx context.Context, p auth.Principal, id string, patch models.UserPatch) (*models.User, error) {
	if err := auth.RequireRole(p, common.RoleAdmin); err != nil {
		return nil, err
	}

	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		patch.Password = &hash
	}

	user, err := s.repomanager.Users(s.db).Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user record. Admin only; the gate is consulted before
// any store access. Todos owned by the user are left in place and resolve
// to a null owner afterwards.
func (s *UserService) Delete(ctx context.Context, p auth.Principal, id string) error {
	if err := auth.RequireRole(p, common.RoleAdmin); err != nil {
		return err
	}

	return s.repomanager.Users(s.db).Delete(ctx, id)
}
