package model

import (
	"time"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"

	BookingTypeStay     = "stay"
	BookingTypeActivity = "activity"
)

type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID       string    `json:"user_id" bson:"userId" validate:"required"`
	HostID       string    `json:"host_id" bson:"hostId" validate:"required"`
	PropertyID   string    `json:"property_id" bson:"propertyId" validate:"required"`
	PropertyName string    `json:"property_name" bson:"propertyName" validate:"omitempty,max=200"`
	CheckIn      time.Time `json:"check_in" bson:"checkIn" validate:"required"`
	CheckOut     time.Time `json:"check_out" bson:"checkOut" validate:"required,gtfield=CheckIn"`
	Guests       int       `json:"guests" bson:"guests" validate:"required,min=1,max=50"`
	TotalAmount  float64   `json:"total_amount" bson:"totalAmount" validate:"min=0"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	BookingType  string    `json:"booking_type" bson:"bookingType" validate:"required,oneof=stay activity"`
	CancelReason string    `json:"cancel_reason,omitempty" bson:"cancelReason,omitempty" validate:"omitempty,max=500"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updatedAt" validate:"omitempty"`
}

type BookingStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// CanTransition reports whether a booking may move from one status to another.
// Bookings are never deleted; cancellation is terminal.
func CanTransition(from, to string) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCancelled
	default:
		return false
	}
}
