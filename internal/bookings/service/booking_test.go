package service

import (
	"context"
	"encoding/json"
	"errors"
	bookingserrors "tembea/internal/bookings/errors"
	"tembea/internal/bookings/validator"
	"tembea/pkg/config"
	mongotx "tembea/pkg/db/mongo"
	apperrors "tembea/pkg/errors"
	"tembea/pkg/kafka"
	"tembea/pkg/logger"
	"tembea/pkg/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	findByUserFunc   func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	countByUserFunc  func(ctx context.Context, userID string) (int64, error)
	findByHostFunc   func(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, error)
	countByHostFunc  func(ctx context.Context, hostID string) (int64, error)
	updateStatusFunc func(ctx context.Context, id, from, to, reason string) error
	updates          int
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.countByUserFunc != nil {
		return m.countByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByHostFunc != nil {
		return m.findByHostFunc(ctx, hostID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByHost(ctx context.Context, hostID string) (int64, error) {
	if m.countByHostFunc != nil {
		return m.countByHostFunc(ctx, hostID)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id, from, to, reason string) error {
	m.updates++
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to, reason)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

type mockPublisher struct {
	messages []kafka.Message
	err      error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.messages = append(m.messages, msg)
	return m.err
}

func newTestService(repo *mockBookingRepository, pub Publisher) BookingService {
	log := logger.Discard()
	cfg := &config.Config{Log: log, ReadTimeout: 5 * time.Second}
	return NewBookingService(repo, validator.NewBookingValidator(log), pub, nil, cfg)
}

func booking(status string) *model.Booking {
	return &model.Booking{
		ID:          "65f1c0ffee0000000000abcd",
		UserID:      "guest-1",
		HostID:      "host-1",
		PropertyID:  "prop-1",
		Status:      status,
		BookingType: model.BookingTypeStay,
		Guests:      2,
	}
}

func repoWith(b *model.Booking) *mockBookingRepository {
	return &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			cp := *b
			return &cp, nil
		},
	}
}

// ────────────────────────────────────────────────
// Tests for GetForUser()
// ────────────────────────────────────────────────

func TestGetForUser(t *testing.T) {
	tests := []struct {
		name        string
		identity    *model.Identity
		repo        *mockBookingRepository
		wantCode    string
		wantMessage string
	}{
		{
			name:     "owner sees booking",
			identity: &model.Identity{UID: "guest-1"},
			repo:     repoWith(booking(model.BookingStatusPending)),
		},
		{
			name:        "other user is forbidden",
			identity:    &model.Identity{UID: "guest-2"},
			repo:        repoWith(booking(model.BookingStatusPending)),
			wantCode:    apperrors.CodeForbidden,
			wantMessage: "You do not have permission to view this booking",
		},
		{
			name:        "host is forbidden on the guest endpoint",
			identity:    &model.Identity{UID: "host-1"},
			repo:        repoWith(booking(model.BookingStatusPending)),
			wantCode:    apperrors.CodeForbidden,
			wantMessage: "You do not have permission to view this booking",
		},
		{
			name:        "missing booking",
			identity:    &model.Identity{UID: "guest-1"},
			repo:        &mockBookingRepository{},
			wantCode:    apperrors.CodeNotFound,
			wantMessage: "Booking not found",
		},
		{
			name:     "invalid id",
			identity: &model.Identity{UID: "guest-1"},
			repo: &mockBookingRepository{findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
				return nil, bookingserrors.ErrInvalidID
			}},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "anonymous",
			identity: nil,
			repo:     repoWith(booking(model.BookingStatusPending)),
			wantCode: apperrors.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.repo, nil)

			got, err := svc.GetForUser(context.Background(), tt.identity, "65f1c0ffee0000000000abcd")

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "guest-1", got.UserID)
				return
			}
			assert.Nil(t, got)
			require.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, appErr.Message)
			}
		})
	}
}

// ────────────────────────────────────────────────
// Tests for ListForUser() / ListForHost()
// ────────────────────────────────────────────────

func TestListForUser_ScopedAndNormalized(t *testing.T) {
	var gotUser string
	var gotLimit int
	repo := &mockBookingRepository{
		findByUserFunc: func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
			gotUser, gotLimit = userID, limit
			return []*model.Booking{booking(model.BookingStatusPending)}, nil
		},
		countByUserFunc: func(ctx context.Context, userID string) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(repo, nil)

	bookings, total, err := svc.ListForUser(context.Background(), &model.Identity{UID: "guest-1"}, 1000, -5)

	require.NoError(t, err)
	assert.Equal(t, "guest-1", gotUser)
	assert.Equal(t, 100, gotLimit)
	assert.Equal(t, int64(1), total)
	assert.Len(t, bookings, 1)
}

func TestListForHost_CountFailure(t *testing.T) {
	repo := &mockBookingRepository{
		countByHostFunc: func(ctx context.Context, hostID string) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}
	svc := newTestService(repo, nil)

	_, _, err := svc.ListForHost(context.Background(), &model.Identity{UID: "host-1"}, 10, 0)

	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

// ────────────────────────────────────────────────
// Tests for Accept() / Cancel()
// ────────────────────────────────────────────────

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		uid      string
		action   func(svc BookingService, identity *model.Identity) (*model.Booking, error)
		wantCode string
		wantTo   string
	}{
		{
			name:   "host accepts pending",
			from:   model.BookingStatusPending,
			uid:    "host-1",
			action: func(svc BookingService, id *model.Identity) (*model.Booking, error) { return svc.Accept(context.Background(), id, "b1") },
			wantTo: model.BookingStatusConfirmed,
		},
		{
			name:   "host cancels pending",
			from:   model.BookingStatusPending,
			uid:    "host-1",
			action: func(svc BookingService, id *model.Identity) (*model.Booking, error) { return svc.Cancel(context.Background(), id, "b1", "") },
			wantTo: model.BookingStatusCancelled,
		},
		{
			name:   "host cancels confirmed",
			from:   model.BookingStatusConfirmed,
			uid:    "host-1",
			action: func(svc BookingService, id *model.Identity) (*model.Booking, error) { return svc.Cancel(context.Background(), id, "b1", "Flooding") },
			wantTo: model.BookingStatusCancelled,
		},
		{
			name:     "accept confirmed conflicts",
			from:     model.BookingStatusConfirmed,
			uid:      "host-1",
			action:   func(svc BookingService, id *model.Identity) (*model.Booking, error) { return svc.Accept(context.Background(), id, "b1") },
			wantCode: apperrors.CodeConflict,
		},
		{
			name:     "accept cancelled conflicts",
			from:     model.BookingStatusCancelled,
			uid:      "host-1",
			action:   func(svc BookingService, id *model.Identity) (*model.Booking, error) { return svc.Accept(context.Background(), id, "b1") },
			wantCode: apperrors.CodeConflict,
		},
		{
			name:     "guest cannot accept",
			from:     model.BookingStatusPending,
			uid:      "guest-1",
			action:   func(svc BookingService, id *model.Identity) (*model.Booking, error) { return svc.Accept(context.Background(), id, "b1") },
			wantCode: apperrors.CodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repoWith(booking(tt.from))
			pub := &mockPublisher{}
			svc := newTestService(repo, pub)

			got, err := tt.action(svc, &model.Identity{UID: tt.uid})

			if tt.wantCode != "" {
				assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
				assert.Zero(t, repo.updates, "no write on rejected transition")
				assert.Empty(t, pub.messages)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, got.Status)
			assert.Equal(t, 1, repo.updates)
			require.Len(t, pub.messages, 1)

			msg := pub.messages[0]
			assert.Equal(t, got.ID, msg.Key)
			assert.Equal(t, EventTypeBookingStatusChanged, msg.GetEventType())
			var event StatusChangedEvent
			require.NoError(t, json.Unmarshal(msg.Value, &event))
			assert.Equal(t, tt.from, event.From)
			assert.Equal(t, tt.wantTo, event.To)
		})
	}
}

func TestCancel_ConcurrentChangeConflicts(t *testing.T) {
	repo := repoWith(booking(model.BookingStatusPending))
	repo.updateStatusFunc = func(ctx context.Context, id, from, to, reason string) error {
		return bookingserrors.ErrStatusChanged
	}
	svc := newTestService(repo, nil)

	_, err := svc.Cancel(context.Background(), &model.Identity{UID: "host-1"}, "b1", "")

	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestAccept_PublishFailureIsNotReturned(t *testing.T) {
	repo := repoWith(booking(model.BookingStatusPending))
	svc := newTestService(repo, &mockPublisher{err: errors.New("broker unavailable")})

	got, err := svc.Accept(context.Background(), &model.Identity{UID: "host-1"}, "b1")

	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, got.Status)
}

func TestCancel_ReasonValidation(t *testing.T) {
	repo := repoWith(booking(model.BookingStatusPending))
	svc := newTestService(repo, nil)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	_, err := svc.Cancel(context.Background(), &model.Identity{UID: "host-1"}, "b1", string(long))

	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Zero(t, repo.updates)
}
