package model

// User represents a ShareIt account as stored in the `users` table.
// Email is unique across all users (compared case-insensitively).
//
// Fields:
//  ID    – primary key identifier, generated by the store.
//  Name  – display name, also used as a comment's author name.
//  Email – unique contact address; must contain '@'.
type User struct {
    ID    int64  `json:"id" db:"id"`       // users.id
    Name  string `json:"name" db:"name"`   // users.name
    Email string `json:"email" db:"email"` // users.email
}

// NewUser carries the fields accepted by user creation.  Email is a
// pointer so that a missing value can be told apart from an empty one.
type NewUser struct {
    Name  string  `json:"name"`
    Email *string `json:"email"`
}

// UserPatch is a partial update of a user.  Fields that were not sent
// (or were sent as null) keep their stored value.
type UserPatch struct {
    Name  Optional[string] `json:"name"`
    Email Optional[string] `json:"email"`
}
