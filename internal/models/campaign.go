package models

import "time"

// Campaign is a brand-owned container for submissions. Ownership is what
// the release path checks before any funds move.
type Campaign struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
