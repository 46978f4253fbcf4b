package model

import "time"

// ItemRequest is a public ask for an item nobody has listed yet.  Other
// users answer it by creating items that reference the request.
type ItemRequest struct {
    ID          int64     `db:"id"`           // requests.id
    Description string    `db:"description"`  // requests.description
    RequesterID int64     `db:"requester_id"` // requests.requester_id
    CreatedAt   time.Time `db:"created_at"`   // requests.created_at
}

// NewItemRequest is the body of POST /requests.
type NewItemRequest struct {
    Description *string `json:"description"`
}

// ItemRequestView is a request together with the items that fulfil it.
type ItemRequestView struct {
    ID          int64     `json:"id"`
    Description string    `json:"description"`
    Created     time.Time `json:"created"`
    Items       []Item    `json:"items"`
}

// View converts a request and its fulfilling items to the public form.
// A nil slice is replaced by an empty one so clients always get an array.
func (r ItemRequest) View(items []Item) ItemRequestView {
    if items == nil {
        items = []Item{}
    }
    return ItemRequestView{ID: r.ID, Description: r.Description, Created: r.CreatedAt, Items: items}
}
