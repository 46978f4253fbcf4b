package model

import (
    "strings"
    "time"
)

// BookingStatus is the decision state of a booking.
type BookingStatus string

const (
    StatusWaiting  BookingStatus = "WAITING"  // created, owner has not decided
    StatusApproved BookingStatus = "APPROVED" // owner accepted; cannot be decided again
    StatusRejected BookingStatus = "REJECTED" // owner declined
)

// BookingState is the filter accepted by the booking list endpoints.
type BookingState string

const (
    StateAll      BookingState = "ALL"
    StateCurrent  BookingState = "CURRENT"
    StateFuture   BookingState = "FUTURE"
    StatePast     BookingState = "PAST"
    StateWaiting  BookingState = "WAITING"
    StateRejected BookingState = "REJECTED"
)

// ParseBookingState converts a query parameter into a BookingState.  The
// match is exact; "all" is not accepted.
func ParseBookingState(s string) (BookingState, bool) {
    switch st := BookingState(strings.TrimSpace(s)); st {
    case StateAll, StateCurrent, StateFuture, StatePast, StateWaiting, StateRejected:
        return st, true
    }
    return "", false
}

// Booking records a user's rental of an item for a time window.  The
// item and booker are resolved by the store when the booking is read so
// that authorization checks can compare owner and booker ids.
//
// Fields:
//  ID     – primary key identifier.
//  Start  – first instant of the rental (UTC).
//  End    – last instant of the rental (UTC).
//  Status – WAITING until the item owner approves or rejects.
//  Item   – the booked item (owner id included).
//  Booker – the user who asked for the rental.
type Booking struct {
    ID     int64         `json:"id"`     // bookings.id
    Start  time.Time     `json:"start"`  // bookings.start_date
    End    time.Time     `json:"end"`    // bookings.end_date
    Status BookingStatus `json:"status"` // bookings.status
    Item   Item          `json:"item"`   // bookings.item_id -> items
    Booker User          `json:"booker"` // bookings.booker_id -> users
}

// Short reduces a booking to the summary shown on item views.
func (b Booking) Short() *BookingShort {
    return &BookingShort{ID: b.ID, BookerID: b.Booker.ID}
}

// NewBooking is the body of POST /bookings.  Start and End are pointers
// so that a missing value can be rejected explicitly.
type NewBooking struct {
    ItemID int64      `json:"itemId"`
    Start  *Timestamp `json:"start"`
    End    *Timestamp `json:"end"`
}
