package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTripFixture builds a 3-day trip owned by ownerID.
func newTripFixture(t *testing.T, ownerID uuid.UUID) *domain.Trip {
	t.Helper()
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	trip, err := domain.NewTrip(ownerID, "Spring break", start, start.AddDate(0, 0, 2), 4)
	require.NoError(t, err)
	return trip
}

func newTestTripService(
	t *testing.T,
	trips *MockTripStore,
	items *MockTripItemStore,
	pub TripEventPublisher,
) (TripService, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc, err := NewTripService(trips, items, newFakeTripMemberStore(), newFakeUserStore(),
		pub, db, slog.Default())
	require.NoError(t, err)
	return svc, dbMock
}

// newSharedTripService wires a service around shared member and user fakes
// for membership tests.
func newSharedTripService(
	t *testing.T,
	trips *MockTripStore,
	members *fakeTripMemberStore,
	users *fakeUserStore,
	pub TripEventPublisher,
) TripService {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc, err := NewTripService(trips, new(MockTripItemStore), members, users,
		pub, db, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestNewTripServiceValidatesDependencies(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	members := newFakeTripMemberStore()
	users := newFakeUserStore()

	_, err = NewTripService(nil, new(MockTripItemStore), members, users, nil, db, slog.Default())
	assert.Error(t, err)

	_, err = NewTripService(new(MockTripStore), nil, members, users, nil, db, slog.Default())
	assert.Error(t, err)

	_, err = NewTripService(new(MockTripStore), new(MockTripItemStore), nil, users, nil, db, slog.Default())
	assert.Error(t, err)

	_, err = NewTripService(new(MockTripStore), new(MockTripItemStore), members, nil, nil, db, slog.Default())
	assert.Error(t, err)

	_, err = NewTripService(new(MockTripStore), new(MockTripItemStore), members, users, nil, nil, slog.Default())
	assert.Error(t, err)
}

func TestCreateTrip(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	items := new(MockTripItemStore)
	svc, _ := newTestTripService(t, trips, items, nil)

	ownerID := uuid.New()
	trips.On("Create", mock.Anything, mock.AnythingOfType("*domain.Trip")).Return(nil)

	trip, err := svc.CreateTrip(context.Background(), ownerID, "Spring break",
		"2026-03-10", "2026-03-12", 4)
	require.NoError(t, err)
	assert.Equal(t, ownerID, trip.OwnerID)
	assert.Equal(t, 3, trip.Days())
	trips.AssertExpectations(t)
}

func TestCreateTripRejectsBadDates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestTripService(t, new(MockTripStore), new(MockTripItemStore), nil)

	_, err := svc.CreateTrip(context.Background(), uuid.New(), "Oops",
		"not-a-date", "2026-03-12", 4)
	assert.Error(t, err)

	// End before start fails domain validation.
	_, err = svc.CreateTrip(context.Background(), uuid.New(), "Backwards",
		"2026-03-12", "2026-03-10", 4)
	assert.ErrorIs(t, err, domain.ErrTripDatesInvalid)
}

func TestGetTripEnforcesOwnership(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	svc, _ := newTestTripService(t, trips, new(MockTripItemStore), nil)

	owner := uuid.New()
	trip := newTripFixture(t, owner)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

	got, err := svc.GetTrip(context.Background(), owner, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)

	_, err = svc.GetTrip(context.Background(), uuid.New(), trip.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestUpdateTripPublishesAfterCommit(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	pub := &recordingPublisher{}
	svc, dbMock := newTestTripService(t, trips, new(MockTripItemStore), pub)

	owner := uuid.New()
	trip := newTripFixture(t, owner)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	trips.On("WithTx", mock.Anything).Return(nil)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
	trips.On("Update", mock.Anything, mock.AnythingOfType("*domain.Trip")).Return(nil)

	updated := *trip
	updated.Name = "Spring break, take two"
	require.NoError(t, svc.UpdateTrip(context.Background(), owner, &updated))

	require.Len(t, pub.changes, 1)
	assert.Equal(t, TripChangeUpdated, pub.changes[0].Kind)
	assert.Equal(t, trip.ID, pub.tripIDs[0])
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateTripRejectsNonOwner(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	pub := &recordingPublisher{}
	svc, dbMock := newTestTripService(t, trips, new(MockTripItemStore), pub)

	trip := newTripFixture(t, uuid.New())

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()
	trips.On("WithTx", mock.Anything).Return(nil)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

	err := svc.UpdateTrip(context.Background(), uuid.New(), trip)
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.Empty(t, pub.changes, "failed mutation must not be broadcast")
}

func TestAddItemPublishesChange(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	items := new(MockTripItemStore)
	pub := &recordingPublisher{}
	svc, _ := newTestTripService(t, trips, items, pub)

	owner := uuid.New()
	trip := newTripFixture(t, owner)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
	items.On("Create", mock.Anything, mock.AnythingOfType("*domain.TripItem")).Return(nil)

	item, err := domain.NewTripItem(trip.ID, "attraction-space-coaster", domain.KindAttraction, 2)
	require.NoError(t, err)

	require.NoError(t, svc.AddItem(context.Background(), owner, item))
	require.Len(t, pub.changes, 1)
	assert.Equal(t, TripChangeItemAdded, pub.changes[0].Kind)
	assert.Equal(t, item.ID, pub.changes[0].Item.ID)
}

func TestAddItemRejectsDayOutOfRange(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	items := new(MockTripItemStore)
	svc, _ := newTestTripService(t, trips, items, nil)

	owner := uuid.New()
	trip := newTripFixture(t, owner) // 3 days
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

	item, err := domain.NewTripItem(trip.ID, "attraction-space-coaster", domain.KindAttraction, 4)
	require.NoError(t, err)

	err = svc.AddItem(context.Background(), owner, item)
	assert.ErrorIs(t, err, ErrDayOutOfRange)
	items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRemoveItemRejectsCrossTripDelete(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	items := new(MockTripItemStore)
	pub := &recordingPublisher{}
	svc, dbMock := newTestTripService(t, trips, items, pub)

	owner := uuid.New()
	trip := newTripFixture(t, owner)
	otherTrip := newTripFixture(t, owner)

	item, err := domain.NewTripItem(otherTrip.ID, "restaurant-galaxy-grill", domain.KindRestaurant, 1)
	require.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
	items.On("WithTx", mock.Anything).Return(nil)
	items.On("GetByID", mock.Anything, item.ID).Return(item, nil)

	err = svc.RemoveItem(context.Background(), owner, trip.ID, item.ID)
	assert.ErrorIs(t, err, store.ErrTripItemNotFound)
	assert.Empty(t, pub.changes)
	items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestInviteMemberOwnerOnly(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	members := newFakeTripMemberStore()
	users := newFakeUserStore()
	pub := &recordingPublisher{}
	svc := newSharedTripService(t, trips, members, users, pub)

	owner := uuid.New()
	trip := newTripFixture(t, owner)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

	invitee, err := domain.NewUser("friend@example.com", "Friend", "a-long-password")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), invitee))

	// A non-owner cannot invite.
	_, err = svc.InviteMember(context.Background(), uuid.New(), trip.ID, invitee.Email)
	assert.ErrorIs(t, err, ErrNotOwned)

	member, err := svc.InviteMember(context.Background(), owner, trip.ID, invitee.Email)
	require.NoError(t, err)
	assert.Equal(t, invitee.ID, member.UserID)

	require.Len(t, pub.changes, 1)
	assert.Equal(t, TripChangeMemberAdded, pub.changes[0].Kind)

	// Inviting again reports the duplicate.
	_, err = svc.InviteMember(context.Background(), owner, trip.ID, invitee.Email)
	assert.ErrorIs(t, err, store.ErrMemberExists)
}

func TestInviteMemberRejectsOwnerEmail(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	members := newFakeTripMemberStore()
	users := newFakeUserStore()
	svc := newSharedTripService(t, trips, members, users, nil)

	ownerUser, err := domain.NewUser("owner@example.com", "Owner", "a-long-password")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), ownerUser))

	trip := newTripFixture(t, ownerUser.ID)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

	_, err = svc.InviteMember(context.Background(), ownerUser.ID, trip.ID, ownerUser.Email)
	assert.ErrorIs(t, err, ErrOwnerAsMember)
}

func TestMemberGainsTripAccess(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	members := newFakeTripMemberStore()
	users := newFakeUserStore()
	svc := newSharedTripService(t, trips, members, users, nil)

	owner := uuid.New()
	trip := newTripFixture(t, owner)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

	stranger := uuid.New()
	_, err := svc.GetTrip(context.Background(), stranger, trip.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	member, err := domain.NewTripMember(trip.ID, stranger)
	require.NoError(t, err)
	require.NoError(t, members.Add(context.Background(), member))

	got, err := svc.GetTrip(context.Background(), stranger, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)

	// Membership grants item access but not trip mutations.
	listed, err := svc.ListMembers(context.Background(), stranger, trip.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	err = svc.DeleteTrip(context.Background(), stranger, trip.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestListTripsIncludesMemberTrips(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	members := newFakeTripMemberStore()
	users := newFakeUserStore()
	svc := newSharedTripService(t, trips, members, users, nil)

	userID := uuid.New()
	owned := newTripFixture(t, userID)
	shared := newTripFixture(t, uuid.New())

	trips.On("ListByOwner", mock.Anything, userID).Return([]*domain.Trip{owned}, nil)
	trips.On("GetByID", mock.Anything, shared.ID).Return(shared, nil)

	member, err := domain.NewTripMember(shared.ID, userID)
	require.NoError(t, err)
	require.NoError(t, members.Add(context.Background(), member))

	got, err := svc.ListTrips(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, owned.ID, got[0].ID)
	assert.Equal(t, shared.ID, got[1].ID)
}

func TestRemoveMemberSelfOrOwner(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	members := newFakeTripMemberStore()
	users := newFakeUserStore()
	pub := &recordingPublisher{}
	svc := newSharedTripService(t, trips, members, users, pub)

	owner := uuid.New()
	trip := newTripFixture(t, owner)
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)

	first, err := domain.NewTripMember(trip.ID, uuid.New())
	require.NoError(t, err)
	second, err := domain.NewTripMember(trip.ID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, members.Add(context.Background(), first))
	require.NoError(t, members.Add(context.Background(), second))

	// A member cannot remove someone else.
	err = svc.RemoveMember(context.Background(), first.UserID, trip.ID, second.UserID)
	assert.ErrorIs(t, err, ErrNotOwned)

	// A member may leave on their own.
	require.NoError(t, svc.RemoveMember(context.Background(), first.UserID, trip.ID, first.UserID))

	// The owner may remove anyone.
	require.NoError(t, svc.RemoveMember(context.Background(), owner, trip.ID, second.UserID))

	left, err := members.ListByTrip(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	require.Len(t, pub.changes, 2)
	assert.Equal(t, TripChangeMemberRemoved, pub.changes[0].Kind)

	// Removing a non-member reports not found.
	err = svc.RemoveMember(context.Background(), owner, trip.ID, first.UserID)
	assert.ErrorIs(t, err, store.ErrMemberNotFound)
}

func TestRemoveItemPublishesRemoval(t *testing.T) {
	t.Parallel()

	trips := new(MockTripStore)
	items := new(MockTripItemStore)
	pub := &recordingPublisher{}
	svc, dbMock := newTestTripService(t, trips, items, pub)

	owner := uuid.New()
	trip := newTripFixture(t, owner)
	item, err := domain.NewTripItem(trip.ID, "restaurant-galaxy-grill", domain.KindRestaurant, 1)
	require.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	trips.On("GetByID", mock.Anything, trip.ID).Return(trip, nil)
	items.On("WithTx", mock.Anything).Return(nil)
	items.On("GetByID", mock.Anything, item.ID).Return(item, nil)
	items.On("Delete", mock.Anything, item.ID).Return(nil)

	require.NoError(t, svc.RemoveItem(context.Background(), owner, trip.ID, item.ID))
	require.Len(t, pub.changes, 1)
	assert.Equal(t, TripChangeItemRemoved, pub.changes[0].Kind)
	assert.Equal(t, item.ID, pub.changes[0].ItemID)
}
