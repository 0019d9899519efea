package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTripStore mocks the store.TripStore interface
type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Trip, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trip), args.Error(1)
}

func (m *MockTripStore) Update(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripStore) WithTx(tx *sql.Tx) store.TripStore {
	m.Called(tx)
	return m
}

// MockTripItemStore mocks the store.TripItemStore interface
type MockTripItemStore struct {
	mock.Mock
}

func (m *MockTripItemStore) Create(ctx context.Context, item *domain.TripItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTripItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TripItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripItem), args.Error(1)
}

func (m *MockTripItemStore) ListByTrip(
	ctx context.Context,
	tripID uuid.UUID,
) ([]*domain.TripItem, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TripItem), args.Error(1)
}

func (m *MockTripItemStore) Update(ctx context.Context, item *domain.TripItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTripItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripItemStore) WithTx(tx *sql.Tx) store.TripItemStore {
	m.Called(tx)
	return m
}

// MockGeofenceStore mocks the store.GeofenceStore interface
type MockGeofenceStore struct {
	mock.Mock
}

func (m *MockGeofenceStore) Create(ctx context.Context, fence *domain.Geofence) error {
	args := m.Called(ctx, fence)
	return args.Error(0)
}

func (m *MockGeofenceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Geofence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Geofence), args.Error(1)
}

func (m *MockGeofenceStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Geofence, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Geofence), args.Error(1)
}

func (m *MockGeofenceStore) Update(ctx context.Context, fence *domain.Geofence) error {
	args := m.Called(ctx, fence)
	return args.Error(0)
}

func (m *MockGeofenceStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGeofenceStore) WithTx(tx *sql.Tx) store.GeofenceStore {
	m.Called(tx)
	return m
}

// fakeUserStore is a map-backed store.UserStore keyed by email.
type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := f.users[user.Email]; exists {
		return store.ErrEmailExists
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := f.users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	for email, existing := range f.users {
		if existing.ID == user.ID {
			if email != user.Email {
				if _, exists := f.users[user.Email]; exists {
					return store.ErrEmailExists
				}
				delete(f.users, email)
			}
			f.users[user.Email] = user
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (f *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	for email, user := range f.users {
		if user.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return f
}

// fakeTripMemberStore is a slice-backed store.TripMemberStore.
type fakeTripMemberStore struct {
	members []*domain.TripMember
}

func newFakeTripMemberStore() *fakeTripMemberStore {
	return &fakeTripMemberStore{}
}

func (f *fakeTripMemberStore) Add(ctx context.Context, member *domain.TripMember) error {
	for _, m := range f.members {
		if m.TripID == member.TripID && m.UserID == member.UserID {
			return store.ErrMemberExists
		}
	}
	f.members = append(f.members, member)
	return nil
}

func (f *fakeTripMemberStore) Remove(ctx context.Context, tripID, userID uuid.UUID) error {
	for i, m := range f.members {
		if m.TripID == tripID && m.UserID == userID {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return store.ErrMemberNotFound
}

func (f *fakeTripMemberStore) IsMember(
	ctx context.Context,
	tripID, userID uuid.UUID,
) (bool, error) {
	for _, m := range f.members {
		if m.TripID == tripID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTripMemberStore) ListByTrip(
	ctx context.Context,
	tripID uuid.UUID,
) ([]*domain.TripMember, error) {
	members := []*domain.TripMember{}
	for _, m := range f.members {
		if m.TripID == tripID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (f *fakeTripMemberStore) ListTripIDsByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	tripIDs := []uuid.UUID{}
	for _, m := range f.members {
		if m.UserID == userID {
			tripIDs = append(tripIDs, m.TripID)
		}
	}
	return tripIDs, nil
}

func (f *fakeTripMemberStore) WithTx(tx *sql.Tx) store.TripMemberStore {
	return f
}

// recordingPublisher captures trip changes fanned out by the service.
type recordingPublisher struct {
	changes []TripChange
	tripIDs []uuid.UUID
}

func (p *recordingPublisher) PublishTripChange(tripID uuid.UUID, change TripChange) {
	p.tripIDs = append(p.tripIDs, tripID)
	p.changes = append(p.changes, change)
}
