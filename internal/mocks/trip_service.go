package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/service"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// MockTripService implements service.TripService for testing
type MockTripService struct {
	// Custom behavior functions
	CreateTripFn func(ctx context.Context, ownerID uuid.UUID, name, start, end string, partySize int) (*domain.Trip, error)
	GetTripFn    func(ctx context.Context, requesterID, tripID uuid.UUID) (*domain.Trip, error)
	ListTripsFn  func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error)
	UpdateTripFn func(ctx context.Context, requesterID uuid.UUID, trip *domain.Trip) error
	DeleteTripFn func(ctx context.Context, requesterID, tripID uuid.UUID) error
	AddItemFn    func(ctx context.Context, requesterID uuid.UUID, item *domain.TripItem) error
	ListItemsFn  func(ctx context.Context, requesterID, tripID uuid.UUID) ([]*domain.TripItem, error)
	UpdateItemFn func(ctx context.Context, requesterID uuid.UUID, item *domain.TripItem) error
	RemoveItemFn func(ctx context.Context, requesterID, tripID, itemID uuid.UUID) error

	InviteMemberFn func(ctx context.Context, requesterID, tripID uuid.UUID, email string) (*domain.TripMember, error)
	ListMembersFn  func(ctx context.Context, requesterID, tripID uuid.UUID) ([]*domain.TripMember, error)
	RemoveMemberFn func(ctx context.Context, requesterID, tripID, memberID uuid.UUID) error

	// Default return values used when functions aren't explicitly defined
	Trip         *domain.Trip
	Trips        []*domain.Trip
	Items        []*domain.TripItem
	Member       *domain.TripMember
	Members      []*domain.TripMember
	DefaultError error
}

// CreateTrip implements the TripService interface
func (m *MockTripService) CreateTrip(
	ctx context.Context,
	ownerID uuid.UUID,
	name, start, end string,
	partySize int,
) (*domain.Trip, error) {
	if m.CreateTripFn != nil {
		return m.CreateTripFn(ctx, ownerID, name, start, end, partySize)
	}
	return m.Trip, m.DefaultError
}

// GetTrip implements the TripService interface
func (m *MockTripService) GetTrip(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
) (*domain.Trip, error) {
	if m.GetTripFn != nil {
		return m.GetTripFn(ctx, requesterID, tripID)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	if m.Trip == nil {
		return nil, store.ErrTripNotFound
	}
	return m.Trip, nil
}

// ListTrips implements the TripService interface
func (m *MockTripService) ListTrips(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Trip, error) {
	if m.ListTripsFn != nil {
		return m.ListTripsFn(ctx, ownerID)
	}
	return m.Trips, m.DefaultError
}

// UpdateTrip implements the TripService interface
func (m *MockTripService) UpdateTrip(
	ctx context.Context,
	requesterID uuid.UUID,
	trip *domain.Trip,
) error {
	if m.UpdateTripFn != nil {
		return m.UpdateTripFn(ctx, requesterID, trip)
	}
	return m.DefaultError
}

// DeleteTrip implements the TripService interface
func (m *MockTripService) DeleteTrip(ctx context.Context, requesterID, tripID uuid.UUID) error {
	if m.DeleteTripFn != nil {
		return m.DeleteTripFn(ctx, requesterID, tripID)
	}
	return m.DefaultError
}

// AddItem implements the TripService interface
func (m *MockTripService) AddItem(
	ctx context.Context,
	requesterID uuid.UUID,
	item *domain.TripItem,
) error {
	if m.AddItemFn != nil {
		return m.AddItemFn(ctx, requesterID, item)
	}
	return m.DefaultError
}

// ListItems implements the TripService interface
func (m *MockTripService) ListItems(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
) ([]*domain.TripItem, error) {
	if m.ListItemsFn != nil {
		return m.ListItemsFn(ctx, requesterID, tripID)
	}
	return m.Items, m.DefaultError
}

// UpdateItem implements the TripService interface
func (m *MockTripService) UpdateItem(
	ctx context.Context,
	requesterID uuid.UUID,
	item *domain.TripItem,
) error {
	if m.UpdateItemFn != nil {
		return m.UpdateItemFn(ctx, requesterID, item)
	}
	return m.DefaultError
}

// RemoveItem implements the TripService interface
func (m *MockTripService) RemoveItem(ctx context.Context, requesterID, tripID, itemID uuid.UUID) error {
	if m.RemoveItemFn != nil {
		return m.RemoveItemFn(ctx, requesterID, tripID, itemID)
	}
	return m.DefaultError
}

// InviteMember implements the TripService interface
func (m *MockTripService) InviteMember(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
	email string,
) (*domain.TripMember, error) {
	if m.InviteMemberFn != nil {
		return m.InviteMemberFn(ctx, requesterID, tripID, email)
	}
	return m.Member, m.DefaultError
}

// ListMembers implements the TripService interface
func (m *MockTripService) ListMembers(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
) ([]*domain.TripMember, error) {
	if m.ListMembersFn != nil {
		return m.ListMembersFn(ctx, requesterID, tripID)
	}
	return m.Members, m.DefaultError
}

// RemoveMember implements the TripService interface
func (m *MockTripService) RemoveMember(
	ctx context.Context,
	requesterID, tripID, memberID uuid.UUID,
) error {
	if m.RemoveMemberFn != nil {
		return m.RemoveMemberFn(ctx, requesterID, tripID, memberID)
	}
	return m.DefaultError
}

// Interface conformance check.
var _ service.TripService = (*MockTripService)(nil)
