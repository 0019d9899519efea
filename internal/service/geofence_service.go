package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/geo"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// GeofenceServiceError is a custom error type for geofence service errors.
type GeofenceServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for GeofenceServiceError.
func (e *GeofenceServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geofence service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("geofence service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GeofenceServiceError) Unwrap() error {
	return e.Err
}

// NewGeofenceServiceError creates a new GeofenceServiceError.
func NewGeofenceServiceError(operation, message string, err error) *GeofenceServiceError {
	return &GeofenceServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// FenceCheck is the verdict for one fence at the checked position.
// DistanceMeters is from the position to the fence center. Events carries
// the transitions this check triggered: entered (cooldown permitting),
// dwell once containment lasted the fence's dwell minimum, and exited.
type FenceCheck struct {
	FenceID        uuid.UUID   `json:"fence_id"`
	Name           string      `json:"name"`
	Inside         bool        `json:"inside"`
	DistanceMeters float64     `json:"distance_meters"`
	Events         []geo.Event `json:"events,omitempty"`
}

// GeofenceService provides geofence CRUD and position checks.
type GeofenceService interface {
	// CreateGeofence saves a new geofence owned by the given user.
	CreateGeofence(ctx context.Context, fence *domain.Geofence) error

	// GetGeofence retrieves a geofence, verifying the requester owns it.
	GetGeofence(ctx context.Context, requesterID, fenceID uuid.UUID) (*domain.Geofence, error)

	// ListGeofences retrieves all geofences owned by the given user.
	ListGeofences(ctx context.Context, ownerID uuid.UUID) ([]*domain.Geofence, error)

	// UpdateGeofence saves changes to a geofence the requester owns.
	UpdateGeofence(ctx context.Context, requesterID uuid.UUID, fence *domain.Geofence) error

	// DeleteGeofence removes a geofence the requester owns.
	DeleteGeofence(ctx context.Context, requesterID, fenceID uuid.UUID) error

	// CheckPosition evaluates a position against every fence the requester
	// owns, returning a containment verdict per fence plus any transition
	// events the check triggered. Visit state lives in the service between
	// calls, so successive checks from the same requester produce entered,
	// dwell, and exited events.
	CheckPosition(ctx context.Context, requesterID uuid.UUID, pos geo.Position) ([]FenceCheck, error)
}

// geofenceServiceImpl implements the GeofenceService interface
type geofenceServiceImpl struct {
	fenceStore store.GeofenceStore
	logger     *slog.Logger

	// trackers holds per-requester, per-fence visit state for CheckPosition.
	// Updating or deleting a fence drops its trackers so the next check
	// evaluates the current definition from scratch.
	trackers   map[uuid.UUID]map[uuid.UUID]*geo.Evaluator
	trackersMu sync.Mutex
}

// NewGeofenceService creates a new GeofenceService.
func NewGeofenceService(
	fenceStore store.GeofenceStore,
	logger *slog.Logger,
) (GeofenceService, error) {
	if fenceStore == nil {
		return nil, domain.NewValidationError("fenceStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &geofenceServiceImpl{
		fenceStore: fenceStore,
		logger:     logger.With(slog.String("component", "geofence_service")),
		trackers:   make(map[uuid.UUID]map[uuid.UUID]*geo.Evaluator),
	}, nil
}

// CreateGeofence implements GeofenceService.CreateGeofence
func (s *geofenceServiceImpl) CreateGeofence(ctx context.Context, fence *domain.Geofence) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.fenceStore.Create(ctx, fence); err != nil {
		log.Error("failed to create geofence",
			slog.String("error", err.Error()),
			slog.String("owner_id", fence.OwnerID.String()))
		return NewGeofenceServiceError("create_geofence", "failed to save geofence", err)
	}

	log.Info("geofence created",
		slog.String("fence_id", fence.ID.String()),
		slog.String("owner_id", fence.OwnerID.String()))

	return nil
}

// GetGeofence implements GeofenceService.GetGeofence
func (s *geofenceServiceImpl) GetGeofence(
	ctx context.Context,
	requesterID, fenceID uuid.UUID,
) (*domain.Geofence, error) {
	return s.ownedFence(ctx, requesterID, fenceID, "get_geofence")
}

// ListGeofences implements GeofenceService.ListGeofences
func (s *geofenceServiceImpl) ListGeofences(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Geofence, error) {
	fences, err := s.fenceStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewGeofenceServiceError("list_geofences", "failed to list geofences", err)
	}
	return fences, nil
}

// UpdateGeofence implements GeofenceService.UpdateGeofence
func (s *geofenceServiceImpl) UpdateGeofence(
	ctx context.Context,
	requesterID uuid.UUID,
	fence *domain.Geofence,
) error {
	current, err := s.ownedFence(ctx, requesterID, fence.ID, "update_geofence")
	if err != nil {
		return err
	}

	// Ownership is immutable.
	fence.OwnerID = current.OwnerID
	fence.CreatedAt = current.CreatedAt

	if err := s.fenceStore.Update(ctx, fence); err != nil {
		return NewGeofenceServiceError("update_geofence", "failed to save geofence", err)
	}

	s.dropTrackers(fence.ID)
	return nil
}

// DeleteGeofence implements GeofenceService.DeleteGeofence
func (s *geofenceServiceImpl) DeleteGeofence(
	ctx context.Context,
	requesterID, fenceID uuid.UUID,
) error {
	if _, err := s.ownedFence(ctx, requesterID, fenceID, "delete_geofence"); err != nil {
		return err
	}

	if err := s.fenceStore.Delete(ctx, fenceID); err != nil {
		return NewGeofenceServiceError("delete_geofence", "failed to delete geofence", err)
	}

	s.dropTrackers(fenceID)
	return nil
}

// CheckPosition implements GeofenceService.CheckPosition
func (s *geofenceServiceImpl) CheckPosition(
	ctx context.Context,
	requesterID uuid.UUID,
	pos geo.Position,
) ([]FenceCheck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fences, err := s.fenceStore.ListByOwner(ctx, requesterID)
	if err != nil {
		return nil, NewGeofenceServiceError("check_position", "failed to list geofences", err)
	}

	checks := make([]FenceCheck, 0, len(fences))
	events := 0
	for _, fence := range fences {
		ev := s.evaluatorFor(requesterID, fence)
		triggered := ev.Update(pos)
		events += len(triggered)
		checks = append(checks, FenceCheck{
			FenceID:        fence.ID,
			Name:           fence.Name,
			Inside:         ev.Inside(),
			DistanceMeters: geo.Distance(fence.Latitude, fence.Longitude, pos.Latitude, pos.Longitude),
			Events:         triggered,
		})
	}

	log.Debug("position checked against geofences",
		slog.Int("fence_count", len(checks)),
		slog.Int("event_count", events))

	return checks, nil
}

// evaluatorFor returns the requester's visit tracker for a fence, creating
// one on first check.
func (s *geofenceServiceImpl) evaluatorFor(requesterID uuid.UUID, fence *domain.Geofence) *geo.Evaluator {
	s.trackersMu.Lock()
	defer s.trackersMu.Unlock()

	byFence := s.trackers[requesterID]
	if byFence == nil {
		byFence = make(map[uuid.UUID]*geo.Evaluator)
		s.trackers[requesterID] = byFence
	}

	ev := byFence[fence.ID]
	if ev == nil {
		ev = geo.NewEvaluator(fence)
		byFence[fence.ID] = ev
	}
	return ev
}

// dropTrackers discards all visit state for a fence.
func (s *geofenceServiceImpl) dropTrackers(fenceID uuid.UUID) {
	s.trackersMu.Lock()
	defer s.trackersMu.Unlock()

	for requesterID, byFence := range s.trackers {
		delete(byFence, fenceID)
		if len(byFence) == 0 {
			delete(s.trackers, requesterID)
		}
	}
}

// ownedFence fetches a geofence and verifies the requester owns it.
func (s *geofenceServiceImpl) ownedFence(
	ctx context.Context,
	requesterID, fenceID uuid.UUID,
	operation string,
) (*domain.Geofence, error) {
	fence, err := s.fenceStore.GetByID(ctx, fenceID)
	if err != nil {
		return nil, NewGeofenceServiceError(operation, "failed to retrieve geofence", err)
	}
	if fence.OwnerID != requesterID {
		return nil, ErrNotOwned
	}
	return fence, nil
}
