package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/metrics"
	"github.com/prohmpiriya/courtside-tickets/internal/nba"
	"github.com/prohmpiriya/courtside-tickets/internal/repository"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"github.com/prohmpiriya/courtside-tickets/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxRosterPlayers bounds the per-request fan-out
	MaxRosterPlayers = 15

	defaultLeague   = "standard"
	gamesPerSeason  = 82
	homeArenaMarker = "TD Garden"
)

// SportsServiceConfig holds query defaults
type SportsServiceConfig struct {
	DefaultSeason string
	DefaultTeamID string
}

// sportsService implements SportsService
type sportsService struct {
	provider nba.Provider
	games    repository.GameRepository
	config   *SportsServiceConfig
	eastern  *time.Location
	log      *logger.Logger
}

// NewSportsService creates a new SportsService
func NewSportsService(provider nba.Provider, games repository.GameRepository, config *SportsServiceConfig, log *logger.Logger) (SportsService, error) {
	if config == nil {
		config = &SportsServiceConfig{}
	}
	if config.DefaultSeason == "" {
		config.DefaultSeason = "2024"
	}
	if config.DefaultTeamID == "" {
		config.DefaultTeamID = "2"
	}
	if log == nil {
		log = logger.NewNop()
	}
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("failed to load game time zone: %w", err)
	}
	return &sportsService{
		provider: provider,
		games:    games,
		config:   config,
		eastern:  eastern,
		log:      log,
	}, nil
}

// Roster loads info and statistics for each requested player. A player
// whose lookup fails gets an entry carrying the error instead of failing
// the whole request.
func (s *sportsService) Roster(ctx context.Context, query *dto.RosterQuery) (*dto.SportsResult, error) {
	season := strings.TrimSpace(query.Season)
	if season == "" {
		return nil, domain.NewValidationError("season", "is required")
	}
	ids := splitIDs(query.PlayerIDs)
	if len(ids) == 0 {
		return nil, domain.NewValidationError("playerIds", "at least one player id is required")
	}
	if len(ids) > MaxRosterPlayers {
		return nil, domain.NewValidationError("playerIds", fmt.Sprintf("at most %d players per request", MaxRosterPlayers))
	}

	ctx, span := telemetry.StartSpan(ctx, "service.sports.roster",
		attribute.String("season", season),
		attribute.Int("players", len(ids)),
	)
	defer span.End()

	entries := make([]dto.RosterEntry, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			entries[i] = s.rosterEntry(ctx, id, season)
			return nil
		})
	}
	_ = g.Wait()

	return &dto.SportsResult{Source: dto.SourceAPI, Items: entries}, nil
}

func (s *sportsService) rosterEntry(ctx context.Context, id, season string) dto.RosterEntry {
	var info, stats []json.RawMessage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.provider.Player(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.provider.PlayerStatistics(gctx, id, season)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.WithContext(ctx).Warn("roster player lookup failed", zap.String("player_id", id), zap.Error(err))
		msg := "Failed to fetch data: " + err.Error()
		return dto.RosterEntry{
			Player:     mustJSON(dto.PlayerError{ID: id, Error: "Info fetch failed"}),
			Statistics: dto.PlayerStatistics{Response: []json.RawMessage{}, Error: &msg},
		}
	}

	player := mustJSON(dto.PlayerError{ID: id, Error: "Info not found"})
	if len(info) > 0 {
		player = info[0]
	}
	if stats == nil {
		stats = []json.RawMessage{}
	}
	return dto.RosterEntry{
		Player:     player,
		Statistics: dto.PlayerStatistics{Response: stats},
	}
}

// Schedule lists a team's games. When the upstream API is unavailable the
// local game list is returned in the upstream shape.
func (s *sportsService) Schedule(ctx context.Context, query *dto.ScheduleQuery) (*dto.SportsResult, error) {
	season := firstNonEmpty(query.Season, s.config.DefaultSeason)
	teamID := firstNonEmpty(query.Team, s.config.DefaultTeamID)

	ctx, span := telemetry.StartSpan(ctx, "service.sports.schedule",
		attribute.String("season", season),
		attribute.String("team", teamID),
	)

	items, err := s.provider.Games(ctx, season, teamID)
	if err == nil {
		telemetry.EndSpan(span, nil)
		return &dto.SportsResult{Source: dto.SourceAPI, Items: items}, nil
	}

	s.log.WithContext(ctx).Warn("schedule falling back to local games", zap.Error(err))
	metrics.SportsFallback("schedule")

	games, err := s.games.List(ctx)
	if err != nil {
		telemetry.EndSpan(span, err)
		return nil, err
	}
	scheduled := make([]dto.ScheduledGame, 0, len(games))
	for _, g := range games {
		scheduled = append(scheduled, s.scheduledGame(g))
	}
	telemetry.EndSpan(span, nil)
	return &dto.SportsResult{Source: dto.SourceFallback, Items: scheduled}, nil
}

// scheduledGame converts a local game. Games at the home arena have the
// home team hosting; all others have it visiting.
func (s *sportsService) scheduledGame(g *domain.Game) dto.ScheduledGame {
	home := homeTeam()
	opponent := teamByName(g.Opponent)

	out := dto.ScheduledGame{
		ID:     g.ID,
		Date:   dto.GameDate{Start: s.gameStart(g)},
		Status: dto.GameState{Long: "Scheduled"},
		Arena:  dto.Arena{Name: g.Location},
	}
	if strings.Contains(g.Location, homeArenaMarker) {
		out.Teams = dto.GameTeams{Home: home, Visitors: opponent}
	} else {
		out.Teams = dto.GameTeams{Home: opponent, Visitors: home}
	}
	return out
}

// gameStart reads "2024-03-28" and "7:30 PM ET" as Eastern time and returns
// RFC 3339 in UTC. An unparseable time yields the bare date.
func (s *sportsService) gameStart(g *domain.Game) string {
	clock := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(g.Time), "ET"))
	start, err := time.ParseInLocation("2006-01-02 3:04 PM", g.Date+" "+clock, s.eastern)
	if err != nil {
		return g.Date
	}
	return start.UTC().Format(time.RFC3339)
}

// Standings lists league standings. When the upstream API is unavailable
// generated standings are returned in the upstream shape.
func (s *sportsService) Standings(ctx context.Context, query *dto.StandingsQuery) (*dto.SportsResult, error) {
	league := firstNonEmpty(query.League, defaultLeague)
	season := firstNonEmpty(query.Season, s.config.DefaultSeason)

	ctx, span := telemetry.StartSpan(ctx, "service.sports.standings",
		attribute.String("league", league),
		attribute.String("season", season),
	)
	defer span.End()

	items, err := s.provider.Standings(ctx, league, season)
	if err == nil {
		return &dto.SportsResult{Source: dto.SourceAPI, Items: items}, nil
	}

	s.log.WithContext(ctx).Warn("standings falling back to generated data", zap.Error(err))
	metrics.SportsFallback("standings")
	return &dto.SportsResult{Source: dto.SourceFallback, Items: fallbackStandings(league, season)}, nil
}

// fallbackStandings derives a full table from each team's position in
// leagueTeams. Better ranked teams get a higher win percentage; the output
// is the same on every call.
func fallbackStandings(league, season string) []dto.TeamStanding {
	seasonYear := 0
	fmt.Sscanf(season, "%d", &seasonYear)

	confRank := make(map[int]int, len(leagueTeams))
	counts := map[string]int{}
	for _, t := range leagueTeams {
		counts[t.Conference]++
		confRank[t.ID] = counts[t.Conference]
	}

	out := make([]dto.TeamStanding, 0, len(leagueTeams))
	leaders := map[string][2]int{}
	for _, t := range leagueTeams {
		rank := confRank[t.ID]

		winPct := math.Max(0.1, math.Min(0.9, 1-float64(rank)/16))
		wins := int(math.Round(gamesPerSeason * winPct))
		losses := gamesPerSeason - wins
		homeWins := int(math.Round(float64(wins) * 0.65))
		homeLosses := int(math.Round(float64(losses) * 0.45))

		lastTen := int(math.Round(2.5 + float64(10-rank)/3))
		lastTen = clamp(lastTen, 0, 10)
		if lastTen > wins {
			lastTen = wins
		}

		if rank == 1 {
			leaders[t.Conference] = [2]int{wins, losses}
		}
		leader := leaders[t.Conference]
		var behind *string
		if rank > 1 {
			gb := fmt.Sprintf("%.1f", float64((leader[0]-wins)+(losses-leader[1]))/2)
			behind = &gb
		}

		out = append(out, dto.TeamStanding{
			League:     league,
			Season:     seasonYear,
			Team:       t.ref(),
			Conference: dto.StandingGroup{Name: strings.ToLower(t.Conference), Rank: rank},
			Division:   dto.StandingGroup{Name: strings.ToLower(t.Division), Rank: divisionRank(t, confRank)},
			Win: dto.WinRecord{
				Home:       homeWins,
				Away:       wins - homeWins,
				Total:      wins,
				Percentage: fmt.Sprintf("%.3f", float64(wins)/gamesPerSeason),
				LastTen:    lastTen,
			},
			Loss: dto.LossRecord{
				Home:       homeLosses,
				Away:       losses - homeLosses,
				Total:      losses,
				Percentage: fmt.Sprintf("%.3f", float64(losses)/gamesPerSeason),
				LastTen:    10 - lastTen,
			},
			GamesBehind: behind,
			Streak:      rank%5 + 1,
			WinStreak:   rank <= 8,
			Points: dto.PointsRecord{
				For:     math.Round((120-float64(rank)*0.5)*10) / 10,
				Against: math.Round((112+float64(rank)*0.4)*10) / 10,
			},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Conference.Name != out[j].Conference.Name {
			return out[i].Conference.Name < out[j].Conference.Name
		}
		return out[i].Conference.Rank < out[j].Conference.Rank
	})
	return out
}

func divisionRank(t team, confRank map[int]int) int {
	rank := 1
	for _, other := range leagueTeams {
		if other.Division == t.Division && confRank[other.ID] < confRank[t.ID] {
			rank++
		}
	}
	return rank
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
