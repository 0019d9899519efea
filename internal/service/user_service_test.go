package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhopper/parkhopper-api/internal/store"
)

func newTestUserService(t *testing.T, users *fakeUserStore) (UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewUserService(users, db, slog.Default()), dbMock
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc, dbMock := newTestUserService(t, users)
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	user, err := svc.CreateUser(context.Background(),
		"wendy@example.com", "Wendy", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, "wendy@example.com", user.Email)
	assert.Equal(t, "Wendy", user.DisplayName)
	assert.Contains(t, users.users, "wendy@example.com")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc, dbMock := newTestUserService(t, users)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	_, err := svc.CreateUser(context.Background(),
		"wendy@example.com", "Wendy", "a-long-enough-password")
	require.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()
	_, err = svc.CreateUser(context.Background(),
		"wendy@example.com", "Other Wendy", "a-long-enough-password")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUpdateUserEmail(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc, dbMock := newTestUserService(t, users)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	user, err := svc.CreateUser(context.Background(),
		"wendy@example.com", "Wendy", "a-long-enough-password")
	require.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	err = svc.UpdateUserEmail(context.Background(), user.ID, "wendy@new.example.com")
	require.NoError(t, err)

	updated, err := svc.GetUserByEmail(context.Background(), "wendy@new.example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
}

func TestUpdateUserEmailUnknownUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc, dbMock := newTestUserService(t, users)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()
	err := svc.UpdateUserEmail(context.Background(), uuid.New(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc, dbMock := newTestUserService(t, users)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	user, err := svc.CreateUser(context.Background(),
		"wendy@example.com", "Wendy", "a-long-enough-password")
	require.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	_, err = svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
