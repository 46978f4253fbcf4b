// Package queue carries booking lifecycle events over RabbitMQ.  The
// server publishes an event whenever a booking is created or decided; the
// optional consumer appends each event to a log file.
package queue

// BookingEventType names what happened to a booking.
type BookingEventType string

const (
    BookingCreated  BookingEventType = "booking.created"
    BookingApproved BookingEventType = "booking.approved"
    BookingRejected BookingEventType = "booking.rejected"
)

// BookingEvent is the JSON payload published to the bookings queue.  It
// holds enough for a consumer to log or notify without reading the
// database.
type BookingEvent struct {
    Type       BookingEventType `json:"type"`
    BookingID  int64            `json:"booking_id"`
    ItemID     int64            `json:"item_id"`
    ItemName   string           `json:"item_name"`
    OwnerID    int64            `json:"owner_id"`
    BookerID   int64            `json:"booker_id"`
    Status     string           `json:"status"`
    Start      string           `json:"start"`
    End        string           `json:"end"`
    OccurredAt string           `json:"occurred_at"`
}
