package dto

import "github.com/prohmpiriya/courtside-tickets/internal/domain"

// GameResponse represents a locally scheduled game
type GameResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Location string `json:"location"`
	Time     string `json:"time"`
}

// NewGameListResponse converts a slice of domain games
func NewGameListResponse(games []*domain.Game) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, GameResponse{
			ID:       g.ID,
			Date:     g.Date,
			Opponent: g.Opponent,
			Location: g.Location,
			Time:     g.Time,
		})
	}
	return out
}
