package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	bookingserrors "tembea/internal/bookings/errors"
	"tembea/internal/bookings/repository"
	"tembea/internal/bookings/validator"
	"tembea/pkg/config"
	apperrors "tembea/pkg/errors"
	"tembea/pkg/kafka"
	"tembea/pkg/metrics"
	"tembea/pkg/middleware"
	"tembea/pkg/model"
	"time"
)

const (
	EventTypeBookingStatusChanged = "booking.status_changed"
	eventSource                   = "tembea-bookings"

	msgForbiddenView   = "You do not have permission to view this booking"
	msgForbiddenManage = "You do not have permission to manage this booking"
)

// Publisher sends booking events. A nil Publisher disables events.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// StatusChangedEvent is the payload of booking.status_changed.
type StatusChangedEvent struct {
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	HostID    string    `json:"host_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Reason    string    `json:"reason,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

type BookingService interface {
	GetForUser(ctx context.Context, identity *model.Identity, id string) (*model.Booking, error)
	ListForUser(ctx context.Context, identity *model.Identity, limit int, offset int64) ([]*model.Booking, int64, error)
	ListForHost(ctx context.Context, identity *model.Identity, limit int, offset int64) ([]*model.Booking, int64, error)
	Accept(ctx context.Context, identity *model.Identity, id string) (*model.Booking, error)
	Cancel(ctx context.Context, identity *model.Identity, id string, reason string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher Publisher
	metrics   *metrics.Metrics
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher Publisher,
	m *metrics.Metrics,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
	}
}

// GetForUser returns a booking only to the guest who made it. Any other
// caller gets FORBIDDEN and no booking data.
func (s *bookingService) GetForUser(ctx context.Context, identity *model.Identity, id string) (*model.Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "Failed to retrieve booking")
	}

	if booking.UserID != identity.UID {
		s.cfg.Log.Warn("Booking access denied",
			"booking_id", id,
			"uid", identity.UID,
		)
		return nil, apperrors.Forbidden(msgForbiddenView)
	}

	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, identity *model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, identity.UID, limit, offset, s.repo.CountByUser, s.repo.FindByUser)
}

func (s *bookingService) ListForHost(ctx context.Context, identity *model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, identity.UID, limit, offset, s.repo.CountByHost, s.repo.FindByHost)
}

func (s *bookingService) list(
	ctx context.Context,
	uid string,
	limit int,
	offset int64,
	countFn func(ctx context.Context, uid string) (int64, error),
	findFn func(ctx context.Context, uid string, limit int, offset int64) ([]*model.Booking, error),
) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = countFn(ctx, uid)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = findFn(ctx, uid, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Accept(ctx context.Context, identity *model.Identity, id string) (*model.Booking, error) {
	return s.changeStatus(ctx, identity, id, model.BookingStatusUpdate{Status: model.BookingStatusConfirmed})
}

func (s *bookingService) Cancel(ctx context.Context, identity *model.Identity, id string, reason string) (*model.Booking, error) {
	return s.changeStatus(ctx, identity, id, model.BookingStatusUpdate{Status: model.BookingStatusCancelled, Reason: reason})
}

// changeStatus runs the host check, transition check and write in one
// transaction, then publishes the change. A publish failure is logged only.
func (s *bookingService) changeStatus(ctx context.Context, identity *model.Identity, id string, update model.BookingStatusUpdate) (*model.Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateStatusUpdate(&update); err != nil {
		s.cfg.Log.Warn("Booking status update validation failed", "error", err)
		return nil, apperrors.Validation("Booking status update validation failed", map[string]any{"error": err.Error()})
	}

	var updated *model.Booking
	var from string
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return s.mapRepoError(err, "Failed to retrieve booking")
		}
		if booking.HostID != identity.UID {
			return apperrors.Forbidden(msgForbiddenManage)
		}
		if !model.CanTransition(booking.Status, update.Status) {
			return apperrors.Conflict(fmt.Sprintf("Cannot change booking from %s to %s", booking.Status, update.Status))
		}

		if err := s.repo.UpdateStatus(txCtx, id, booking.Status, update.Status, update.Reason); err != nil {
			return s.mapRepoError(err, "Failed to update booking status")
		}

		from = booking.Status
		booking.Status = update.Status
		if update.Reason != "" {
			booking.CancelReason = update.Reason
		}
		booking.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
		updated = booking
		return nil
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			s.cfg.Log.Error("Failed to change booking status", "booking_id", id, "error", err)
			return nil, apperrors.Internal("Failed to update booking status", err)
		}
		return nil, err
	}

	s.metrics.ObserveBookingStatusChange(updated.Status)
	s.cfg.Log.Info("Booking status changed",
		"booking_id", id,
		"host_id", identity.UID,
		"from", from,
		"to", updated.Status,
	)
	s.publishStatusChange(ctx, updated, from)

	return updated, nil
}

func (s *bookingService) publishStatusChange(ctx context.Context, booking *model.Booking, from string) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(StatusChangedEvent{
			BookingID: booking.ID,
			UserID:    booking.UserID,
			HostID:    booking.HostID,
			From:      from,
			To:        booking.Status,
			Reason:    booking.CancelReason,
			ChangedAt: booking.UpdatedAt,
		}).
		WithEventType(EventTypeBookingStatusChanged).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSource(eventSource).
		Build()
	if err != nil {
		s.cfg.Log.Error("Failed to build booking event", "booking_id", booking.ID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"booking_id", booking.ID,
			"event_type", EventTypeBookingStatusChanged,
			"error", err,
		)
	}
}

func (s *bookingService) mapRepoError(err error, message string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFound("Booking")
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	case errors.Is(err, bookingserrors.ErrStatusChanged):
		return apperrors.Conflict("Booking was modified by another request, retry")
	default:
		return apperrors.Internal(message, err)
	}
}

func requireIdentity(identity *model.Identity) error {
	if identity == nil || identity.UID == "" {
		return apperrors.Unauthorized("Authentication required")
	}
	return nil
}
