package model

// Item is something a user offers for rent.  Items are stored in the
// `items` table and are mutated only by their owner.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – short name, never blank.
//  Description – free text description.
//  Available   – whether the item can currently be booked.
//  OwnerID     – user who listed the item.
//  RequestID   – item request this item was created to fulfil (nil if none).
type Item struct {
    ID          int64  `json:"id" db:"id"`                          // items.id
    Name        string `json:"name" db:"name"`                      // items.name
    Description string `json:"description" db:"description"`        // items.description
    Available   bool   `json:"available" db:"available"`            // items.available
    OwnerID     int64  `json:"ownerId" db:"owner_id"`               // items.owner_id
    RequestID   *int64 `json:"requestId,omitempty" db:"request_id"` // items.request_id (nullable)
}

// NewItem carries the fields accepted by item creation.  Description
// and Available are pointers because both are mandatory and a missing
// value must be rejected.  RequestID 0 means "not created for a request".
type NewItem struct {
    Name        string  `json:"name"`
    Description *string `json:"description"`
    Available   *bool   `json:"available"`
    RequestID   int64   `json:"requestId"`
}

// ItemPatch is a partial update of an item.
type ItemPatch struct {
    Name        Optional[string] `json:"name"`
    Description Optional[string] `json:"description"`
    Available   Optional[bool]   `json:"available"`
}

// BookingShort is the reduced booking attached to an item view.
type BookingShort struct {
    ID       int64 `json:"id"`
    BookerID int64 `json:"bookerId"`
}

// ItemView is an item as returned by the read endpoints.  Last and next
// bookings are only filled for the item's owner.
type ItemView struct {
    Item
    LastBooking *BookingShort `json:"lastBooking"`
    NextBooking *BookingShort `json:"nextBooking"`
    Comments    []CommentView `json:"comments"`
}
