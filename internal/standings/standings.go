// Package standings folds monthly match records into per-league
// win/loss tables.
package standings

import (
	"sort"

	"github.com/kusaka/npblive/internal/scrape"
	"github.com/kusaka/npblive/internal/teams"
)

// Standing is one team's aggregated month record.
type Standing struct {
	Rank        int      `json:"rank"`
	Team        teams.ID `json:"team"`
	Games       int      `json:"games"`
	Wins        int      `json:"wins"`
	Losses      int      `json:"losses"`
	Draws       int      `json:"draws"`
	WinRate     float64  `json:"winRate"`
	GamesBehind float64  `json:"gamesBehind"`
}

// Table holds both league standings.
type Table struct {
	Central []Standing `json:"central"`
	Pacific []Standing `json:"pacific"`
}

type tally struct {
	wins, losses, draws int
}

// Aggregate recomputes standings from scratch over one month of game
// days. Matches with an unresolved team on either side are ignored;
// teams with no aggregated games are left out of the output entirely.
func Aggregate(days []scrape.GameDay) Table {
	stats := make(map[teams.ID]*tally)
	add := func(id teams.ID) *tally {
		t, ok := stats[id]
		if !ok {
			t = &tally{}
			stats[id] = t
		}
		return t
	}

	for _, day := range days {
		for _, m := range day.Matches {
			if m.AwayTeamID == teams.Unknown || m.HomeTeamID == teams.Unknown {
				continue
			}
			away, home := add(m.AwayTeamID), add(m.HomeTeamID)
			switch {
			case m.AwayScore > m.HomeScore:
				away.wins++
				home.losses++
			case m.HomeScore > m.AwayScore:
				home.wins++
				away.losses++
			default:
				away.draws++
				home.draws++
			}
		}
	}

	return Table{
		Central: rank(teams.ByLeague(teams.Central), stats),
		Pacific: rank(teams.ByLeague(teams.Pacific), stats),
	}
}

// rank builds one league's sorted standings. The sort is stable: teams
// with equal win rates keep directory order, which is a documented
// stable ordering, not a total one. Win rate counts decisions only
// (draws excluded); a team with zero decisions has rate 0.
func rank(league []teams.Team, stats map[teams.ID]*tally) []Standing {
	rows := make([]Standing, 0, len(league))
	for _, team := range league {
		t, ok := stats[team.ID]
		if !ok {
			continue
		}
		games := t.wins + t.losses + t.draws
		if games == 0 {
			continue
		}
		decisions := t.wins + t.losses
		rate := 0.0
		if decisions > 0 {
			rate = float64(t.wins) / float64(decisions)
		}
		rows = append(rows, Standing{
			Team:    team.ID,
			Games:   games,
			Wins:    t.wins,
			Losses:  t.losses,
			Draws:   t.draws,
			WinRate: rate,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WinRate > rows[j].WinRate
	})

	if len(rows) == 0 {
		return rows
	}

	// Games behind uses the trailing team's own decision count, not the
	// standard (leaderW-teamW + teamL-leaderL)/2 formula. This matches
	// the upstream behavior and is kept as-is; see DESIGN.md.
	leaderRate := rows[0].WinRate
	for i := range rows {
		rows[i].Rank = i + 1
		if i > 0 {
			rows[i].GamesBehind = (leaderRate - rows[i].WinRate) * float64(rows[i].Wins+rows[i].Losses) / 2
		}
	}

	return rows
}
