package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/response"
)

// DataSourceHeader tells clients whether sports data is live or generated
const DataSourceHeader = "X-Data-Source"

// SportsHandler serves games and proxied sports data
type SportsHandler struct {
	sportsService service.SportsService
	gameService   service.GameService
}

// NewSportsHandler creates a new SportsHandler
func NewSportsHandler(sportsService service.SportsService, gameService service.GameService) *SportsHandler {
	return &SportsHandler{sportsService: sportsService, gameService: gameService}
}

// Games lists the local schedule
// GET /api/v1/games
func (h *SportsHandler) Games(c *gin.Context) {
	games, err := h.gameService.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.NewGameListResponse(games), len(games)))
}

// Roster returns info and statistics for each requested player
// GET /api/v1/sports/roster?season=&playerIds=1,2,3
func (h *SportsHandler) Roster(c *gin.Context) {
	var query dto.RosterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	h.respond(c, func() (*dto.SportsResult, error) {
		return h.sportsService.Roster(c.Request.Context(), &query)
	})
}

// Schedule lists a team's games
// GET /api/v1/sports/schedule?season=&team=
func (h *SportsHandler) Schedule(c *gin.Context) {
	var query dto.ScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	h.respond(c, func() (*dto.SportsResult, error) {
		return h.sportsService.Schedule(c.Request.Context(), &query)
	})
}

// Standings lists league standings
// GET /api/v1/sports/standings?league=&season=
func (h *SportsHandler) Standings(c *gin.Context) {
	var query dto.StandingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	h.respond(c, func() (*dto.SportsResult, error) {
		return h.sportsService.Standings(c.Request.Context(), &query)
	})
}

func (h *SportsHandler) respond(c *gin.Context, load func() (*dto.SportsResult, error)) {
	result, err := load()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(DataSourceHeader, result.Source)
	c.JSON(http.StatusOK, response.Success(result.Items))
}
