package models

import "time"

// Notice is an announcement shown to unit accounts.
type Notice struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Author    string    `db:"author" json:"author"`
	Important bool      `db:"important" json:"important"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// BoardPost is a free-form post on the information board.
type BoardPost struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Summary   *string   `db:"summary" json:"summary,omitempty"`
	Author    string    `db:"author" json:"author"`
	Tags      *string   `db:"tags" json:"tags,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
