package domain

import "time"

// Link represents a shortened URL
type Link struct {
	ID          int64     `json:"-" db:"id"`
	ShortID     string    `json:"short_id" db:"short_id"`
	OriginalURL string    `json:"original_url" db:"original_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Clicks      int64     `json:"clicks" db:"clicks"` // Equals the number of ClickEvents
}
