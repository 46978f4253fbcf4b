package gateway

import "github.com/iliyamo/shareit/internal/model"

// Request bodies as the gateway checks them before forwarding.  Only
// presence is enforced here; content rules stay with the server.

type itemBody struct {
    Name        string  `json:"name" validate:"required"`
    Description *string `json:"description" validate:"required"`
    Available   *bool   `json:"available" validate:"required"`
    RequestID   int64   `json:"requestId" validate:"gte=0"`
}

type bookingBody struct {
    ItemID int64            `json:"itemId"`
    Start  *model.Timestamp `json:"start" validate:"required"`
    End    *model.Timestamp `json:"end" validate:"required"`
}

type commentBody struct {
    Text string `json:"text" validate:"required"`
}

type requestBody struct {
    Description string `json:"description" validate:"required"`
}

// anyBody accepts any JSON object; used where the server owns every rule.
type anyBody map[string]any

type pageQuery struct {
    From int `query:"from" validate:"gte=0"`
    Size int `query:"size" validate:"gt=0"`
}

type stateQuery struct {
    State string `query:"state" validate:"oneof=ALL CURRENT FUTURE PAST WAITING REJECTED"`
}
