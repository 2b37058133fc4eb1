package scrape

import "regexp"

// The NPB result pages carry no semantic class names, so extraction is
// positional: fixed table indices, fixed row offsets, and regexes over
// free text. The site has changed this layout before and will again;
// keeping the constants in one configurable struct makes the next drift
// a data change instead of a code change.

const (
	// Origin is the fixed site origin used to absolutize relative hrefs.
	Origin = "https://npb.jp"
)

// Layout describes where each extraction zone sits in a box-score page
// and which patterns pull fields out of its free text.
type Layout struct {
	// InfoTableIndex is the table holding stadium and game-info text in
	// its first row (cell 0 = stadium, cell 1 = info string).
	InfoTableIndex int

	// ScoreTableIndex is the line-score table: header row, away row,
	// home row. Each team row is name cell, inning cells, then three
	// trailing cells for runs/hits/errors.
	ScoreTableIndex int

	// PitcherTableIndex is the decisions table. Not every page variant
	// has one.
	PitcherTableIndex int

	// GameTime matches "試合時間 - 3：12 (開始18:00 終了21:12)" and
	// captures duration, start and end.
	GameTime *regexp.Regexp

	// Attendance matches "入場者 - 42,935" and captures the
	// thousands-separated count.
	Attendance *regexp.Regexp
}

// DefaultLayout matches the structure currently served by npb.jp.
func DefaultLayout() Layout {
	return Layout{
		InfoTableIndex:    0,
		ScoreTableIndex:   1,
		PitcherTableIndex: 2,
		GameTime:          regexp.MustCompile(`試合時間\s*-\s*([\d：:]+)\s*\(\s*開始([\d:]+)\s*終了([\d:]+)\s*\)`),
		Attendance:        regexp.MustCompile(`入場者\s*-\s*([\d,]+)`),
	}
}

var (
	// scoreAnchor matches calendar anchors like "巨 5 - 2 中", capturing
	// away name, away score, home score, home name in that order.
	scoreAnchor = regexp.MustCompile(`^(.+?)\s+(\d+)\s*-\s*(\d+)\s+(.+?)$`)

	// gameIDPattern pulls the per-game identifier ("s" + digits) out of
	// a detail-page href.
	gameIDPattern = regexp.MustCompile(`(s\d+)\.html`)

	// gameIDDate recognizes identifiers whose digits embed the game
	// date as yyyymmdd.
	gameIDDate = regexp.MustCompile(`^s(\d{4})(\d{2})(\d{2})`)
)
