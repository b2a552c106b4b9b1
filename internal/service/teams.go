package service

import "github.com/prohmpiriya/courtside-tickets/internal/dto"

const homeTeamID = 2

type team struct {
	ID         int
	Name       string
	Nickname   string
	Code       string
	Conference string
	Division   string
}

func (t team) ref() dto.TeamRef {
	return dto.TeamRef{ID: t.ID, Name: t.Name, Nickname: t.Nickname, Code: t.Code}
}

// leagueTeams is listed in fallback conference order, East first
var leagueTeams = []team{
	{2, "Boston Celtics", "Celtics", "BOS", "East", "Atlantic"},
	{20, "Miami Heat", "Heat", "MIA", "East", "Southeast"},
	{24, "New York Knicks", "Knicks", "NYK", "East", "Atlantic"},
	{27, "Philadelphia 76ers", "76ers", "PHI", "East", "Atlantic"},
	{4, "Brooklyn Nets", "Nets", "BKN", "East", "Atlantic"},
	{21, "Milwaukee Bucks", "Bucks", "MIL", "East", "Central"},
	{7, "Cleveland Cavaliers", "Cavaliers", "CLE", "East", "Central"},
	{26, "Orlando Magic", "Magic", "ORL", "East", "Southeast"},
	{15, "Indiana Pacers", "Pacers", "IND", "East", "Central"},
	{1, "Atlanta Hawks", "Hawks", "ATL", "East", "Southeast"},
	{6, "Chicago Bulls", "Bulls", "CHI", "East", "Central"},
	{38, "Toronto Raptors", "Raptors", "TOR", "East", "Atlantic"},
	{5, "Charlotte Hornets", "Hornets", "CHA", "East", "Southeast"},
	{41, "Washington Wizards", "Wizards", "WAS", "East", "Southeast"},
	{10, "Detroit Pistons", "Pistons", "DET", "East", "Central"},
	{14, "Houston Rockets", "Rockets", "HOU", "West", "Southwest"},
	{9, "Denver Nuggets", "Nuggets", "DEN", "West", "Northwest"},
	{16, "LA Clippers", "Clippers", "LAC", "West", "Pacific"},
	{28, "Phoenix Suns", "Suns", "PHX", "West", "Pacific"},
	{17, "Los Angeles Lakers", "Lakers", "LAL", "West", "Pacific"},
	{8, "Dallas Mavericks", "Mavericks", "DAL", "West", "Southwest"},
	{40, "Utah Jazz", "Jazz", "UTA", "West", "Northwest"},
	{25, "Oklahoma City Thunder", "Thunder", "OKC", "West", "Northwest"},
	{22, "Minnesota Timberwolves", "Timberwolves", "MIN", "West", "Northwest"},
	{19, "Memphis Grizzlies", "Grizzlies", "MEM", "West", "Southwest"},
	{30, "Sacramento Kings", "Kings", "SAC", "West", "Pacific"},
	{11, "Golden State Warriors", "Warriors", "GSW", "West", "Pacific"},
	{23, "New Orleans Pelicans", "Pelicans", "NOP", "West", "Southwest"},
	{29, "Portland Trail Blazers", "Trail Blazers", "POR", "West", "Northwest"},
	{31, "San Antonio Spurs", "Spurs", "SAS", "West", "Southwest"},
}

var teamsByName = func() map[string]team {
	m := make(map[string]team, len(leagueTeams))
	for _, t := range leagueTeams {
		m[t.Name] = t
	}
	return m
}()

// teamByName returns a reference for a full team name. Unknown names keep
// the name with id 0.
func teamByName(name string) dto.TeamRef {
	if t, ok := teamsByName[name]; ok {
		return t.ref()
	}
	return dto.TeamRef{Name: name}
}

func homeTeam() dto.TeamRef {
	for _, t := range leagueTeams {
		if t.ID == homeTeamID {
			return t.ref()
		}
	}
	return dto.TeamRef{ID: homeTeamID}
}
