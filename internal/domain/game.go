package domain

import "time"

// Game is a locally scheduled home or away game
type Game struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Opponent  string    `json:"opponent"`
	Location  string    `json:"location"`
	Time      string    `json:"time"` // e.g. "7:30 PM ET"
	CreatedAt time.Time `json:"created_at"`
}
