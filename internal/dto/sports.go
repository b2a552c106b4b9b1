package dto

import "encoding/json"

// Data sources reported with sports responses
const (
	SourceAPI      = "api"
	SourceFallback = "fallback"
)

// SportsResult carries a sports payload and where it came from.
// Items is the upstream JSON when Source is api or cache, and a typed
// fallback slice otherwise.
type SportsResult struct {
	Source string      `json:"-"`
	Items  interface{} `json:"items"`
}

// RosterQuery represents roster query parameters
type RosterQuery struct {
	Season    string `form:"season"`
	PlayerIDs string `form:"playerIds"`
}

// ScheduleQuery represents schedule query parameters
type ScheduleQuery struct {
	Season string `form:"season"`
	Team   string `form:"team"`
}

// StandingsQuery represents standings query parameters
type StandingsQuery struct {
	League string `form:"league"`
	Season string `form:"season"`
}

// RosterEntry is one requested player with their statistics
type RosterEntry struct {
	Player     json.RawMessage  `json:"player"`
	Statistics PlayerStatistics `json:"statistics"`
}

// PlayerStatistics wraps the upstream statistics list
type PlayerStatistics struct {
	Response []json.RawMessage `json:"response"`
	Error    *string           `json:"error"`
}

// PlayerError stands in for player info that could not be loaded
type PlayerError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// ScheduledGame mirrors the upstream games shape for locally scheduled games
type ScheduledGame struct {
	ID     string    `json:"id"`
	Date   GameDate  `json:"date"`
	Teams  GameTeams `json:"teams"`
	Scores GameScore `json:"scores"`
	Status GameState `json:"status"`
	Arena  Arena     `json:"arena"`
}

type GameDate struct {
	Start string `json:"start"`
}

type GameTeams struct {
	Home     TeamRef `json:"home"`
	Visitors TeamRef `json:"visitors"`
}

// TeamRef identifies a team; ID is 0 when unknown
type TeamRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Code     string `json:"code,omitempty"`
}

type GameScore struct {
	Home     TeamPoints `json:"home"`
	Visitors TeamPoints `json:"visitors"`
}

type TeamPoints struct {
	Points *int `json:"points"`
}

type GameState struct {
	Long string `json:"long"`
}

type Arena struct {
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// TeamStanding mirrors the upstream standings shape
type TeamStanding struct {
	League      string        `json:"league"`
	Season      int           `json:"season"`
	Team        TeamRef       `json:"team"`
	Conference  StandingGroup `json:"conference"`
	Division    StandingGroup `json:"division"`
	Win         WinRecord     `json:"win"`
	Loss        LossRecord    `json:"loss"`
	GamesBehind *string       `json:"gamesBehind"`
	Streak      int           `json:"streak"`
	WinStreak   bool          `json:"winStreak"`
	Points      PointsRecord  `json:"points"`
}

type StandingGroup struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

type WinRecord struct {
	Home       int    `json:"home"`
	Away       int    `json:"away"`
	Total      int    `json:"total"`
	Percentage string `json:"percentage"`
	LastTen    int    `json:"lastTen"`
}

type LossRecord struct {
	Home       int    `json:"home"`
	Away       int    `json:"away"`
	Total      int    `json:"total"`
	Percentage string `json:"percentage"`
	LastTen    int    `json:"lastTen"`
}

// PointsRecord holds per-game scoring averages
type PointsRecord struct {
	For     float64 `json:"for"`
	Against float64 `json:"against"`
}
