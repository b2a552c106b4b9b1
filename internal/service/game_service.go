package service

import (
	"context"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/repository"
	"github.com/prohmpiriya/courtside-tickets/pkg/telemetry"
)

// gameService implements GameService
type gameService struct {
	games repository.GameRepository
}

// NewGameService creates a new GameService
func NewGameService(games repository.GameRepository) GameService {
	return &gameService{games: games}
}

// ListGames lists the local schedule ordered by date
func (s *gameService) ListGames(ctx context.Context) ([]*domain.Game, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.game.list")

	games, err := s.games.List(ctx)
	telemetry.EndSpan(span, err)
	return games, err
}
