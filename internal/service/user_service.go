package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// UserService provides account operations behind the profile endpoints.
// Updates follow a read-modify-write pattern inside a transaction: the full
// user row is fetched, one field changed, and the whole object written back.
type UserService interface {
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser creates a new account. The store hashes the password.
	CreateUser(ctx context.Context, email, displayName, password string) (*domain.User, error)

	// UpdateUserEmail changes the account's email address.
	UpdateUserEmail(ctx context.Context, userID uuid.UUID, newEmail string) error

	// UpdateUserPassword changes the account's password.
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error

	// DeleteUser removes the account.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements UserService over a UserStore.
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// GetUser retrieves a user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user by email",
				slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// CreateUser creates a new account inside a transaction.
func (s *UserServiceImpl) CreateUser(
	ctx context.Context,
	email, displayName, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, displayName, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if !errors.Is(err, store.ErrEmailExists) {
			s.logger.Error("failed to save user",
				slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("user_id", user.ID.String()))
	return user, nil
}

// UpdateUserEmail changes the account's email address.
func (s *UserServiceImpl) UpdateUserEmail(
	ctx context.Context,
	userID uuid.UUID,
	newEmail string,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		user.Email = newEmail
		if err := txStore.Update(ctx, user); err != nil {
			if !errors.Is(err, store.ErrEmailExists) {
				s.logger.Error("failed to update user email",
					slog.String("error", err.Error()),
					slog.String("user_id", userID.String()))
			}
			return fmt.Errorf("failed to update user email: %w", err)
		}

		s.logger.Info("user email updated",
			slog.String("user_id", userID.String()))
		return nil
	})
}

// UpdateUserPassword changes the account's password. The store hashes the
// plaintext on update.
func (s *UserServiceImpl) UpdateUserPassword(
	ctx context.Context,
	userID uuid.UUID,
	newPassword string,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for password update: %w", err)
		}

		user.Password = newPassword
		if err := txStore.Update(ctx, user); err != nil {
			s.logger.Error("failed to update user password",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return fmt.Errorf("failed to update user password: %w", err)
		}

		s.logger.Info("user password updated",
			slog.String("user_id", userID.String()))
		return nil
	})
}

// DeleteUser removes the account.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Delete(ctx, userID); err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				s.logger.Error("failed to delete user",
					slog.String("error", err.Error()),
					slog.String("user_id", userID.String()))
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.logger.Info("user deleted",
			slog.String("user_id", userID.String()))
		return nil
	})
}
