package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// TripServiceError is a custom error type for trip service errors.
type TripServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TripServiceError.
func (e *TripServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trip service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("trip service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TripServiceError) Unwrap() error {
	return e.Err
}

// NewTripServiceError creates a new TripServiceError.
func NewTripServiceError(operation, message string, err error) *TripServiceError {
	return &TripServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Trip change kinds published to the trip's realtime room after a mutation
// is persisted.
const (
	TripChangeUpdated     = "trip_updated"
	TripChangeItemAdded   = "item_added"
	TripChangeItemUpdated = "item_updated"
	TripChangeItemRemoved = "item_removed"
)

// TripChange describes a persisted trip mutation for fan-out to connected
// party members. Exactly one of Trip, Item, or Member is set depending on
// Kind; ItemID is always set for item removals and MemberID for member
// removals.
type TripChange struct {
	Kind     string             `json:"kind"`
	Trip     *domain.Trip       `json:"trip,omitempty"`
	Item     *domain.TripItem   `json:"item,omitempty"`
	ItemID   uuid.UUID          `json:"item_id,omitempty"`
	Member   *domain.TripMember `json:"member,omitempty"`
	MemberID uuid.UUID          `json:"member_id,omitempty"`
}

// TripEventPublisher fans persisted trip changes out to the trip's realtime
// room. The hub implements this; a nil publisher disables fan-out.
type TripEventPublisher interface {
	PublishTripChange(tripID uuid.UUID, change TripChange)
}

// Member change kinds published alongside the trip change kinds above.
const (
	TripChangeMemberAdded   = "member_added"
	TripChangeMemberRemoved = "member_removed"
)

// TripService provides trip, trip item, and trip membership operations.
// Reads and item mutations are open to the owner and every member; trip
// mutations and member management stay with the owner. Mutations persist
// first, then publish the change to the trip room.
type TripService interface {
	// CreateTrip creates a new trip owned by the given user.
	CreateTrip(
		ctx context.Context,
		ownerID uuid.UUID,
		name string,
		start, end string,
		partySize int,
	) (*domain.Trip, error)

	// GetTrip retrieves a trip, verifying the requester owns it or is a
	// member. Returns ErrNotOwned otherwise.
	GetTrip(ctx context.Context, requesterID, tripID uuid.UUID) (*domain.Trip, error)

	// ListTrips retrieves the trips the given user owns plus the trips
	// they are a member of.
	ListTrips(ctx context.Context, userID uuid.UUID) ([]*domain.Trip, error)

	// UpdateTrip saves changes to a trip the requester owns.
	UpdateTrip(ctx context.Context, requesterID uuid.UUID, trip *domain.Trip) error

	// DeleteTrip removes a trip and all of its items.
	DeleteTrip(ctx context.Context, requesterID, tripID uuid.UUID) error

	// AddItem pins a catalog entity to a day of the trip.
	// Returns ErrDayOutOfRange when the day falls outside the trip dates.
	AddItem(ctx context.Context, requesterID uuid.UUID, item *domain.TripItem) error

	// ListItems retrieves a trip's items ordered by day then sort order.
	ListItems(ctx context.Context, requesterID, tripID uuid.UUID) ([]*domain.TripItem, error)

	// UpdateItem saves changes to an existing trip item.
	UpdateItem(ctx context.Context, requesterID uuid.UUID, item *domain.TripItem) error

	// RemoveItem deletes an item from the trip's shared list.
	RemoveItem(ctx context.Context, requesterID, tripID, itemID uuid.UUID) error

	// InviteMember adds the user with the given email to the trip's party.
	// Only the owner may invite. Returns store.ErrMemberExists when the
	// user is already a member and ErrOwnerAsMember when the email belongs
	// to the owner.
	InviteMember(ctx context.Context, requesterID, tripID uuid.UUID, email string) (*domain.TripMember, error)

	// ListMembers retrieves the trip's members. The owner and every member
	// may list.
	ListMembers(ctx context.Context, requesterID, tripID uuid.UUID) ([]*domain.TripMember, error)

	// RemoveMember drops a member from the trip. The owner may remove
	// anyone; a member may remove only themselves.
	RemoveMember(ctx context.Context, requesterID, tripID, memberID uuid.UUID) error
}

// tripServiceImpl implements the TripService interface
type tripServiceImpl struct {
	tripStore   store.TripStore
	itemStore   store.TripItemStore
	memberStore store.TripMemberStore
	userStore   store.UserStore
	publisher   TripEventPublisher
	db          *sql.DB
	logger      *slog.Logger
}

// NewTripService creates a new TripService.
// It returns an error if any of the required dependencies are nil.
// The publisher may be nil, which disables realtime fan-out.
func NewTripService(
	tripStore store.TripStore,
	itemStore store.TripItemStore,
	memberStore store.TripMemberStore,
	userStore store.UserStore,
	publisher TripEventPublisher,
	db *sql.DB,
	logger *slog.Logger,
) (TripService, error) {
	if tripStore == nil {
		return nil, domain.NewValidationError("tripStore", "cannot be nil", domain.ErrValidation)
	}
	if itemStore == nil {
		return nil, domain.NewValidationError("itemStore", "cannot be nil", domain.ErrValidation)
	}
	if memberStore == nil {
		return nil, domain.NewValidationError("memberStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &tripServiceImpl{
		tripStore:   tripStore,
		itemStore:   itemStore,
		memberStore: memberStore,
		userStore:   userStore,
		publisher:   publisher,
		db:          db,
		logger:      logger.With(slog.String("component", "trip_service")),
	}, nil
}

// CreateTrip implements TripService.CreateTrip
func (s *tripServiceImpl) CreateTrip(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
	start, end string,
	partySize int,
) (*domain.Trip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	startDate, endDate, err := parseTripDates(start, end)
	if err != nil {
		return nil, NewTripServiceError("create_trip", "invalid trip dates", err)
	}

	trip, err := domain.NewTrip(ownerID, name, startDate, endDate, partySize)
	if err != nil {
		return nil, NewTripServiceError("create_trip", "invalid trip", err)
	}

	if err := s.tripStore.Create(ctx, trip); err != nil {
		log.Error("failed to create trip",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTripServiceError("create_trip", "failed to save trip", err)
	}

	log.Info("trip created",
		slog.String("trip_id", trip.ID.String()),
		slog.String("owner_id", ownerID.String()))

	return trip, nil
}

// GetTrip implements TripService.GetTrip
func (s *tripServiceImpl) GetTrip(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
) (*domain.Trip, error) {
	return s.accessibleTrip(ctx, requesterID, tripID, "get_trip")
}

// ListTrips implements TripService.ListTrips
// Owned trips come first, then trips the user was invited to.
func (s *tripServiceImpl) ListTrips(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Trip, error) {
	trips, err := s.tripStore.ListByOwner(ctx, userID)
	if err != nil {
		return nil, NewTripServiceError("list_trips", "failed to list trips", err)
	}

	memberTripIDs, err := s.memberStore.ListTripIDsByUser(ctx, userID)
	if err != nil {
		return nil, NewTripServiceError("list_trips", "failed to list memberships", err)
	}
	for _, tripID := range memberTripIDs {
		trip, err := s.tripStore.GetByID(ctx, tripID)
		if err != nil {
			return nil, NewTripServiceError("list_trips", "failed to retrieve member trip", err)
		}
		trips = append(trips, trip)
	}

	return trips, nil
}

// UpdateTrip implements TripService.UpdateTrip
// It re-reads the trip to verify ownership before persisting, then publishes
// the change to the trip room.
func (s *tripServiceImpl) UpdateTrip(
	ctx context.Context,
	requesterID uuid.UUID,
	trip *domain.Trip,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTrips := s.tripStore.WithTx(tx)

		current, err := txTrips.GetByID(ctx, trip.ID)
		if err != nil {
			return NewTripServiceError("update_trip", "failed to retrieve trip", err)
		}
		if current.OwnerID != requesterID {
			return ErrNotOwned
		}

		// Ownership is immutable.
		trip.OwnerID = current.OwnerID
		trip.CreatedAt = current.CreatedAt

		if err := txTrips.Update(ctx, trip); err != nil {
			return NewTripServiceError("update_trip", "failed to save trip", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("trip updated",
		slog.String("trip_id", trip.ID.String()))

	s.publish(trip.ID, TripChange{Kind: TripChangeUpdated, Trip: trip})
	return nil
}

// DeleteTrip implements TripService.DeleteTrip
func (s *tripServiceImpl) DeleteTrip(ctx context.Context, requesterID, tripID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.ownedTrip(ctx, requesterID, tripID, "delete_trip"); err != nil {
		return err
	}

	if err := s.tripStore.Delete(ctx, tripID); err != nil {
		return NewTripServiceError("delete_trip", "failed to delete trip", err)
	}

	log.Info("trip deleted",
		slog.String("trip_id", tripID.String()))

	return nil
}

// AddItem implements TripService.AddItem
func (s *tripServiceImpl) AddItem(
	ctx context.Context,
	requesterID uuid.UUID,
	item *domain.TripItem,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	trip, err := s.accessibleTrip(ctx, requesterID, item.TripID, "add_item")
	if err != nil {
		return err
	}

	if item.Day < 1 || item.Day > trip.Days() {
		return ErrDayOutOfRange
	}

	if err := s.itemStore.Create(ctx, item); err != nil {
		log.Error("failed to create trip item",
			slog.String("error", err.Error()),
			slog.String("trip_id", item.TripID.String()))
		return NewTripServiceError("add_item", "failed to save item", err)
	}

	log.Debug("trip item added",
		slog.String("trip_id", item.TripID.String()),
		slog.String("item_id", item.ID.String()))

	s.publish(item.TripID, TripChange{Kind: TripChangeItemAdded, Item: item})
	return nil
}

// ListItems implements TripService.ListItems
func (s *tripServiceImpl) ListItems(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
) ([]*domain.TripItem, error) {
	if _, err := s.accessibleTrip(ctx, requesterID, tripID, "list_items"); err != nil {
		return nil, err
	}

	items, err := s.itemStore.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, NewTripServiceError("list_items", "failed to list items", err)
	}
	return items, nil
}

// UpdateItem implements TripService.UpdateItem
func (s *tripServiceImpl) UpdateItem(
	ctx context.Context,
	requesterID uuid.UUID,
	item *domain.TripItem,
) error {
	trip, err := s.accessibleTrip(ctx, requesterID, item.TripID, "update_item")
	if err != nil {
		return err
	}

	if item.Day < 1 || item.Day > trip.Days() {
		return ErrDayOutOfRange
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txItems := s.itemStore.WithTx(tx)

		current, err := txItems.GetByID(ctx, item.ID)
		if err != nil {
			return NewTripServiceError("update_item", "failed to retrieve item", err)
		}
		// An item cannot be moved to another trip.
		if current.TripID != item.TripID {
			return store.ErrTripItemNotFound
		}

		if err := txItems.Update(ctx, item); err != nil {
			return NewTripServiceError("update_item", "failed to save item", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(item.TripID, TripChange{Kind: TripChangeItemUpdated, Item: item})
	return nil
}

// RemoveItem implements TripService.RemoveItem
func (s *tripServiceImpl) RemoveItem(
	ctx context.Context,
	requesterID, tripID, itemID uuid.UUID,
) error {
	if _, err := s.accessibleTrip(ctx, requesterID, tripID, "remove_item"); err != nil {
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txItems := s.itemStore.WithTx(tx)

		current, err := txItems.GetByID(ctx, itemID)
		if err != nil {
			return NewTripServiceError("remove_item", "failed to retrieve item", err)
		}
		if current.TripID != tripID {
			return store.ErrTripItemNotFound
		}

		if err := txItems.Delete(ctx, itemID); err != nil {
			return NewTripServiceError("remove_item", "failed to delete item", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(tripID, TripChange{Kind: TripChangeItemRemoved, ItemID: itemID})
	return nil
}

// InviteMember implements TripService.InviteMember
func (s *tripServiceImpl) InviteMember(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
	email string,
) (*domain.TripMember, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	trip, err := s.ownedTrip(ctx, requesterID, tripID, "invite_member")
	if err != nil {
		return nil, err
	}

	invitee, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, NewTripServiceError("invite_member", "failed to look up invitee", err)
	}
	if invitee.ID == trip.OwnerID {
		return nil, ErrOwnerAsMember
	}

	member, err := domain.NewTripMember(tripID, invitee.ID)
	if err != nil {
		return nil, NewTripServiceError("invite_member", "invalid membership", err)
	}

	if err := s.memberStore.Add(ctx, member); err != nil {
		if store.IsDuplicateError(err) {
			return nil, err
		}
		log.Error("failed to add trip member",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return nil, NewTripServiceError("invite_member", "failed to save membership", err)
	}

	log.Info("trip member invited",
		slog.String("trip_id", tripID.String()),
		slog.String("user_id", invitee.ID.String()))

	s.publish(tripID, TripChange{Kind: TripChangeMemberAdded, Member: member})
	return member, nil
}

// ListMembers implements TripService.ListMembers
func (s *tripServiceImpl) ListMembers(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
) ([]*domain.TripMember, error) {
	if _, err := s.accessibleTrip(ctx, requesterID, tripID, "list_members"); err != nil {
		return nil, err
	}

	members, err := s.memberStore.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, NewTripServiceError("list_members", "failed to list members", err)
	}
	return members, nil
}

// RemoveMember implements TripService.RemoveMember
func (s *tripServiceImpl) RemoveMember(
	ctx context.Context,
	requesterID, tripID, memberID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	trip, err := s.tripStore.GetByID(ctx, tripID)
	if err != nil {
		return NewTripServiceError("remove_member", "failed to retrieve trip", err)
	}
	// Members may leave on their own; removing anyone else is the owner's call.
	if requesterID != trip.OwnerID && requesterID != memberID {
		return ErrNotOwned
	}

	if err := s.memberStore.Remove(ctx, tripID, memberID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to remove trip member",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return NewTripServiceError("remove_member", "failed to delete membership", err)
	}

	log.Info("trip member removed",
		slog.String("trip_id", tripID.String()),
		slog.String("user_id", memberID.String()))

	s.publish(tripID, TripChange{Kind: TripChangeMemberRemoved, MemberID: memberID})
	return nil
}

// ownedTrip fetches a trip and verifies the requester owns it.
func (s *tripServiceImpl) ownedTrip(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
	operation string,
) (*domain.Trip, error) {
	trip, err := s.tripStore.GetByID(ctx, tripID)
	if err != nil {
		return nil, NewTripServiceError(operation, "failed to retrieve trip", err)
	}
	if trip.OwnerID != requesterID {
		return nil, ErrNotOwned
	}
	return trip, nil
}

// accessibleTrip fetches a trip and verifies the requester owns it or is a
// member of its party.
func (s *tripServiceImpl) accessibleTrip(
	ctx context.Context,
	requesterID, tripID uuid.UUID,
	operation string,
) (*domain.Trip, error) {
	trip, err := s.tripStore.GetByID(ctx, tripID)
	if err != nil {
		return nil, NewTripServiceError(operation, "failed to retrieve trip", err)
	}
	if trip.OwnerID == requesterID {
		return trip, nil
	}

	isMember, err := s.memberStore.IsMember(ctx, tripID, requesterID)
	if err != nil {
		return nil, NewTripServiceError(operation, "failed to check membership", err)
	}
	if !isMember {
		return nil, ErrNotOwned
	}
	return trip, nil
}

// parseTripDates parses the YYYY-MM-DD date strings used on the wire.
func parseTripDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return startDate, endDate, nil
}

// publish fans a persisted change out to the trip room when a publisher is
// configured.
func (s *tripServiceImpl) publish(tripID uuid.UUID, change TripChange) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishTripChange(tripID, change)
}
