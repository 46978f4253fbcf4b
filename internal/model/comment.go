package model

import "time"

// Comment is feedback left on an item by someone who rented it.
type Comment struct {
    ID         int64     `db:"id"`          // comments.id
    Text       string    `db:"text"`        // comments.text
    ItemID     int64     `db:"item_id"`     // comments.item_id
    AuthorID   int64     `db:"author_id"`   // comments.author_id
    AuthorName string    `db:"author_name"` // users.name of the author (joined)
    CreatedAt  time.Time `db:"created_at"`  // comments.created_at
}

// NewComment is the body of POST /items/{id}/comment.
type NewComment struct {
    Text string `json:"text"`
}

// CommentView is the public representation of a comment.
type CommentView struct {
    ID         int64     `json:"id"`
    Text       string    `json:"text"`
    AuthorName string    `json:"authorName"`
    Created    time.Time `json:"created"`
}

// View converts a stored comment to its public form.
func (c Comment) View() CommentView {
    return CommentView{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.CreatedAt}
}
