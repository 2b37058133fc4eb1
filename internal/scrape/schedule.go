package scrape

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kusaka/npblive/internal/teams"
)

// ErrPageStructure is returned when a page holds none of the expected
// markup at all, which usually means the site changed its layout.
var ErrPageStructure = errors.New("page structure not recognized")

// Match is one game extracted from a calendar cell. Team names that
// resolve to no known franchise keep the Unknown identifier; whether to
// filter those records is the caller's decision.
type Match struct {
	Away       string   `json:"away"`
	AwayTeamID teams.ID `json:"awayTeamId"`
	AwayScore  int      `json:"awayScore"`
	HomeScore  int      `json:"homeScore"`
	Home       string   `json:"home"`
	HomeTeamID teams.ID `json:"homeTeamId"`
	URL        string   `json:"url"`
	DetailURL  string   `json:"detailUrl"`
	GameID     string   `json:"gameId,omitempty"`
}

// GameDay groups the matches played on one calendar date.
type GameDay struct {
	Date    string  `json:"date"`
	Matches []Match `json:"matches"`
}

// ParseSchedulePage extracts all matches from a monthly calendar page.
// Each nowrap cell holds a date anchor followed by zero or more match
// anchors of the form "巨 5 - 2 中". Malformed anchors are skipped; one
// bad cell never aborts the page.
func ParseSchedulePage(html string, year, month int) ([]GameDay, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing schedule HTML: %w", err)
	}

	if doc.Find("table").Length() == 0 {
		return nil, fmt.Errorf("schedule page: %w", ErrPageStructure)
	}

	idMarker := fmt.Sprintf("s%d", year)

	var days []GameDay
	doc.Find(`table td[nowrap="nowrap"]`).Each(func(_ int, td *goquery.Selection) {
		links := td.Find("a")
		if links.Length() == 0 {
			return
		}

		day := strings.TrimSpace(links.First().Text())
		if day == "" {
			return
		}

		var matches []Match
		links.Each(func(i int, link *goquery.Selection) {
			if i == 0 {
				return
			}

			text := strings.TrimSpace(link.Text())
			href, _ := link.Attr("href")

			m := scoreAnchor.FindStringSubmatch(text)
			if m == nil || href == "" || !strings.Contains(href, idMarker) {
				return
			}

			awayScore, err := strconv.Atoi(m[2])
			if err != nil {
				return
			}
			homeScore, err := strconv.Atoi(m[3])
			if err != nil {
				return
			}

			away := strings.TrimSpace(m[1])
			home := strings.TrimSpace(m[4])
			detailURL := absoluteURL(href)

			matches = append(matches, Match{
				Away:       away,
				AwayTeamID: teams.Resolve(away),
				AwayScore:  awayScore,
				HomeScore:  homeScore,
				Home:       home,
				HomeTeamID: teams.Resolve(home),
				URL:        detailURL,
				DetailURL:  detailURL,
				GameID:     extractGameID(href),
			})
		})

		if len(matches) > 0 {
			days = append(days, GameDay{
				Date:    fmt.Sprintf("%d月%s日", month, day),
				Matches: matches,
			})
		}
	})

	log.Printf("[scrape] schedule %d-%02d: %d game days parsed", year, month, len(days))
	return days, nil
}

// absoluteURL prefixes relative hrefs with the site origin.
func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return Origin + href
}

// extractGameID pulls the "s<digits>" identifier out of a detail href,
// or returns "" when the href does not carry one.
func extractGameID(href string) string {
	m := gameIDPattern.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}
