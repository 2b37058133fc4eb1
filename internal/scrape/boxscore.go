package scrape

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kusaka/npblive/internal/teams"
)

// InningScores are the per-inning runs for both sides. Innings the team
// did not bat ("X", empty cells) are omitted, not recorded as zero; a
// zero means no runs scored, an omission means the inning did not occur.
type InningScores struct {
	Away []int `json:"away"`
	Home []int `json:"home"`
}

// SideTotals is one aggregate figure (runs, hits or errors) per side.
type SideTotals struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

// BoxScore is the full record for one game's detail page. Fields the
// page variant does not carry stay empty or zero; Warnings collects
// data-quality findings such as an innings/runs sum mismatch.
type BoxScore struct {
	GameID         string       `json:"gameId"`
	Date           string       `json:"date"`
	Stadium        string       `json:"stadium"`
	Attendance     int          `json:"attendance"`
	Time           string       `json:"time"`
	EndTime        string       `json:"endTime"`
	Duration       string       `json:"duration"`
	InningScores   InningScores `json:"inningScores"`
	HomeScore      int          `json:"homeScore"`
	AwayScore      int          `json:"awayScore"`
	HomeTeam       string       `json:"homeTeam"`
	AwayTeam       string       `json:"awayTeam"`
	HomeTeamID     teams.ID     `json:"homeTeamId"`
	AwayTeamID     teams.ID     `json:"awayTeamId"`
	Runs           SideTotals   `json:"runs"`
	Hits           SideTotals   `json:"hits"`
	Errors         SideTotals   `json:"errors"`
	Status         string       `json:"status"`
	WinningPitcher string       `json:"winningPitcher,omitempty"`
	LosingPitcher  string       `json:"losingPitcher,omitempty"`
	SavePitcher    string       `json:"savePitcher,omitempty"`
	Warnings       []string     `json:"warnings,omitempty"`
}

// StatusFinished is the only status the result pages describe; live
// games never appear on them.
const StatusFinished = "試合終了"

// ParseBoxScore extracts a game record from a detail page. Extraction
// zones are independent: a missing info table does not block the score
// table, and a missing pitcher table is normal for some page variants.
// Only a document with no tables at all fails.
func ParseBoxScore(html, gameID string, layout Layout) (*BoxScore, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing box-score HTML: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, fmt.Errorf("box-score page for %s: %w", gameID, ErrPageStructure)
	}

	box := &BoxScore{
		GameID: gameID,
		Date:   dateFromGameID(gameID),
		Status: StatusFinished,
	}

	parseInfoZone(tables, layout, box)
	parseScoreZone(tables, layout, box)
	parsePitcherZone(tables, layout, box)

	log.Printf("[scrape] box score %s: %s, %d vs %d innings, %d warnings",
		gameID, box.Stadium, len(box.InningScores.Away), len(box.InningScores.Home), len(box.Warnings))
	return box, nil
}

// parseInfoZone reads stadium, game time and attendance from the first
// row of the info table. Either regex may miss; that yields empty/zero
// fields, not a failure, because not every page carries both lines.
func parseInfoZone(tables *goquery.Selection, layout Layout, box *BoxScore) {
	if tables.Length() <= layout.InfoTableIndex {
		box.Warnings = append(box.Warnings, "info table missing")
		return
	}

	cells := tables.Eq(layout.InfoTableIndex).Find("tr").First().Find("td")
	if cells.Length() < 2 {
		box.Warnings = append(box.Warnings, "info row has too few cells")
		return
	}

	box.Stadium = strings.TrimSpace(cells.Eq(0).Text())
	info := strings.TrimSpace(cells.Eq(1).Text())

	if m := layout.GameTime.FindStringSubmatch(info); m != nil {
		box.Duration = m[1]
		box.Time = m[2]
		box.EndTime = m[3]
	}
	if m := layout.Attendance.FindStringSubmatch(info); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			box.Attendance = n
		}
	}
}

// parseScoreZone reads the line-score table: header row, away row, home
// row. Row and cell counts are validated before any indexing so layout
// drift surfaces as a warning instead of an out-of-range read.
func parseScoreZone(tables *goquery.Selection, layout Layout, box *BoxScore) {
	if tables.Length() <= layout.ScoreTableIndex {
		box.Warnings = append(box.Warnings, "score table missing")
		return
	}

	rows := tables.Eq(layout.ScoreTableIndex).Find("tr")
	if rows.Length() < 3 {
		box.Warnings = append(box.Warnings, fmt.Sprintf("score table has %d rows, want 3", rows.Length()))
		return
	}

	awayName, awayInnings, awayRHE, ok := parseTeamRow(rows.Eq(1))
	if !ok {
		box.Warnings = append(box.Warnings, "away score row has too few cells")
		return
	}
	homeName, homeInnings, homeRHE, ok := parseTeamRow(rows.Eq(2))
	if !ok {
		box.Warnings = append(box.Warnings, "home score row has too few cells")
		return
	}

	box.AwayTeam = awayName
	box.HomeTeam = homeName
	box.AwayTeamID = teams.Resolve(awayName)
	box.HomeTeamID = teams.Resolve(homeName)
	box.InningScores = InningScores{Away: awayInnings, Home: homeInnings}
	box.Runs = SideTotals{Away: awayRHE[0], Home: homeRHE[0]}
	box.Hits = SideTotals{Away: awayRHE[1], Home: homeRHE[1]}
	box.Errors = SideTotals{Away: awayRHE[2], Home: homeRHE[2]}
	box.AwayScore = awayRHE[0]
	box.HomeScore = homeRHE[0]

	// An innings/runs divergence is the most likely sign of an upstream
	// layout change; surface it, never trust it silently.
	if sum(awayInnings) != awayRHE[0] {
		box.Warnings = append(box.Warnings,
			fmt.Sprintf("away innings sum %d != reported runs %d", sum(awayInnings), awayRHE[0]))
	}
	if sum(homeInnings) != homeRHE[0] {
		box.Warnings = append(box.Warnings,
			fmt.Sprintf("home innings sum %d != reported runs %d", sum(homeInnings), homeRHE[0]))
	}
}

// parseTeamRow splits one line-score row into team name, innings and
// the trailing R/H/E triple. The boundary between innings and R/H/E is
// not fixed-width (games end after variable innings), so the three
// rightmost cells are taken as the summary and everything between the
// name cell and that point as innings.
func parseTeamRow(row *goquery.Selection) (name string, innings []int, rhe [3]int, ok bool) {
	cells := row.Find("td")
	// Name cell, at least one inning, three summary cells.
	if cells.Length() < 5 {
		return "", nil, rhe, false
	}

	name = strings.TrimSpace(cells.Eq(0).Text())
	n := cells.Length()

	for i := 1; i < n-3; i++ {
		text := strings.TrimSpace(cells.Eq(i).Text())
		switch text {
		case "", "-", "–", "－", "X", "Ｘ":
			// Valid non-innings: separators, unplayed frames, and the
			// home team skipping its final at-bat.
			continue
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			// Parse anomaly: omit the inning rather than coercing to 0.
			continue
		}
		innings = append(innings, v)
	}

	for i := 0; i < 3; i++ {
		text := strings.TrimSpace(cells.Eq(n - 3 + i).Text())
		v, err := strconv.Atoi(text)
		if err != nil {
			v = 0
		}
		rhe[i] = v
	}

	return name, innings, rhe, true
}

// parsePitcherZone scans the decisions table for the winning, losing
// and save pitchers. The adjacent cell text is kept verbatim as
// "name (line)"; the W-L-ERA line is not decomposed further.
func parsePitcherZone(tables *goquery.Selection, layout Layout, box *BoxScore) {
	if tables.Length() <= layout.PitcherTableIndex {
		return
	}

	tables.Eq(layout.PitcherTableIndex).Find("tr").Each(func(_ int, row *goquery.Selection) {
		text := row.Text()
		value := strings.TrimSpace(row.Find("td").Eq(1).Text())
		switch {
		case strings.Contains(text, "勝投手"):
			box.WinningPitcher = value
		case strings.Contains(text, "敗投手"):
			box.LosingPitcher = value
		case strings.Contains(text, "セーブ"):
			box.SavePitcher = value
		}
	})
}

// dateFromGameID derives the game date from identifiers whose digits
// embed yyyymmdd, e.g. "s2025060102968" → "2025年06月01日".
func dateFromGameID(gameID string) string {
	m := gameIDDate.FindStringSubmatch(gameID)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s年%s月%s日", m[1], m[2], m[3])
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
