package domain

import "time"

// ClickEvent is one recorded redirect of a short link. Rows are append-only.
type ClickEvent struct {
	ID        int64     `json:"id" db:"id"`
	ShortID   string    `json:"short_id" db:"short_id"`
	ClickedAt time.Time `json:"clicked_at" db:"clicked_at"`
}
