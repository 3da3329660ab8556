package model

import (
	"math"
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldCustomerID  = "customer_id"
	FieldRoomID      = "room_id"
	FieldBookingDate = "booking_date"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldDuration    = "duration"
	FieldTotalPrice  = "total_price"
	FieldStatus      = "status"
	FieldChannel     = "channel"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	ChannelOnline  = "online"
	ChannelOffline = "offline"
)

type Booking struct {
	ID           int64     `db:"id"`
	CustomerID   int64     `db:"customer_id"`
	RoomID       int64     `db:"room_id"`
	BookingDate  time.Time `db:"booking_date"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Duration     int       `db:"duration"`
	TotalPrice   float64   `db:"total_price"`
	Status       string    `db:"status"`
	Channel      string    `db:"channel"`
	RoomNumber   string    `db:"room_number"   table:"rooms"     column:"room_number"`
	CustomerName string    `db:"customer_name" table:"customers" column:"full_name"`
	model.Metadata
}

func (b Booking) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = bookings.room_id LEFT JOIN customers ON customers.id = bookings.customer_id"
}

// IsTerminal reports whether the booking reached a final status. Terminal
// bookings are immutable.
func (b Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// Overlaps reports whether two half-open [start, end) intervals intersect.
// A booking ending on the day another starts does not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DurationDays charges whole days, at least one. Partial days are not billed.
func DurationDays(start, end time.Time) int {
	days := int(math.Floor(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}

	return days
}
