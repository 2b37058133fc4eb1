package scrape

import (
	"os"
	"reflect"
	"testing"

	"github.com/kusaka/npblive/internal/teams"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return string(data)
}

func TestParseSchedulePage(t *testing.T) {
	html := loadFixture(t, "schedule.html")

	days, err := ParseSchedulePage(html, 2025, 6)
	if err != nil {
		t.Fatalf("ParseSchedulePage failed: %v", err)
	}

	// Day 3 has a date anchor but no matches; the empty cells contribute
	// nothing. Only days 1 and 2 produce records.
	if len(days) != 2 {
		t.Fatalf("parsed %d game days, expected 2", len(days))
	}

	day1 := days[0]
	if day1.Date != "6月1日" {
		t.Errorf("day 1 date = %q, expected 6月1日", day1.Date)
	}
	if len(day1.Matches) != 2 {
		t.Fatalf("day 1 has %d matches, expected 2", len(day1.Matches))
	}

	giants := day1.Matches[0]
	if giants.AwayTeamID != teams.Giants || giants.HomeTeamID != teams.Dragons {
		t.Errorf("match 1 resolved %s vs %s, expected giants vs dragons", giants.AwayTeamID, giants.HomeTeamID)
	}
	if giants.AwayScore != 5 || giants.HomeScore != 2 {
		t.Errorf("match 1 score %d-%d, expected 5-2", giants.AwayScore, giants.HomeScore)
	}
	if giants.DetailURL != "https://npb.jp/bis/2025/games/s2025060102968.html" {
		t.Errorf("match 1 detail URL = %q, relative href not absolutized", giants.DetailURL)
	}
	if giants.GameID != "s2025060102968" {
		t.Errorf("match 1 game id = %q, expected s2025060102968", giants.GameID)
	}

	draw := day1.Matches[1]
	if draw.AwayTeamID != teams.Hawks || draw.HomeTeamID != teams.Fighters {
		t.Errorf("match 2 resolved %s vs %s, expected hawks vs fighters", draw.AwayTeamID, draw.HomeTeamID)
	}
	if draw.AwayScore != 3 || draw.HomeScore != 3 {
		t.Errorf("match 2 score %d-%d, expected the 3-3 draw", draw.AwayScore, draw.HomeScore)
	}

	// Day 2: absolute hrefs pass through untouched, unknown teams are
	// flagged but kept, and the non-score anchor is skipped without
	// aborting the cell.
	day2 := days[1]
	if len(day2.Matches) != 2 {
		t.Fatalf("day 2 has %d matches, expected 2", len(day2.Matches))
	}
	if day2.Matches[0].DetailURL != "https://npb.jp/bis/2025/games/s2025060202970.html" {
		t.Errorf("absolute href changed: %q", day2.Matches[0].DetailURL)
	}
	exhibition := day2.Matches[1]
	if exhibition.AwayTeamID != teams.Unknown || exhibition.HomeTeamID != teams.Unknown {
		t.Errorf("exhibition teams resolved to %s/%s, expected unknown/unknown", exhibition.AwayTeamID, exhibition.HomeTeamID)
	}
	if exhibition.Away != "侍" {
		t.Errorf("exhibition away raw name = %q", exhibition.Away)
	}
}

func TestParseSchedulePageIdempotent(t *testing.T) {
	html := loadFixture(t, "schedule.html")

	first, err := ParseSchedulePage(html, 2025, 6)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := ParseSchedulePage(html, 2025, 6)
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same document twice produced different records")
	}
}

func TestParseSchedulePageNoTables(t *testing.T) {
	_, err := ParseSchedulePage("<html><body><p>maintenance</p></body></html>", 2025, 6)
	if err == nil {
		t.Fatal("expected a structural error for a page without tables")
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		href     string
		expected string
	}{
		{"/bis/2025/games/s1.html", "https://npb.jp/bis/2025/games/s1.html"},
		{"bis/2025/games/s1.html", "https://npb.jp/bis/2025/games/s1.html"},
		{"https://npb.jp/bis/2025/games/s1.html", "https://npb.jp/bis/2025/games/s1.html"},
	}
	for _, tt := range tests {
		if got := absoluteURL(tt.href); got != tt.expected {
			t.Errorf("absoluteURL(%q) = %q, expected %q", tt.href, got, tt.expected)
		}
	}
}
