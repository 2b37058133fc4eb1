// Package teams holds the canonical NPB team directory and the resolver
// that maps scraped name fragments to team identifiers.
package teams

import "strings"

// ID is a canonical team identifier. The set of valid IDs is fixed at
// twelve franchises plus the Unknown sentinel.
type ID string

const (
	// Central League
	Giants   ID = "giants"
	Hanshin  ID = "hanshin"
	BayStars ID = "baystars"
	Carp     ID = "carp"
	Swallows ID = "swallows"
	Dragons  ID = "dragons"

	// Pacific League
	Hawks     ID = "hawks"
	Fighters  ID = "fighters"
	Marines   ID = "marines"
	Eagles    ID = "eagles"
	Buffaloes ID = "buffaloes"
	Lions     ID = "lions"

	// Unknown is the explicit sentinel for a name fragment that matched
	// no known team. It is a first-class result, not an error.
	Unknown ID = "unknown"
)

// League identifies one of the two NPB leagues.
type League string

const (
	Central League = "central"
	Pacific League = "pacific"
)

// Team is the display metadata for one franchise.
type Team struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Color     string `json:"color"`
	League    League `json:"league"`
}

// Directory lists all twelve franchises in canonical order: Central
// League first, Pacific League second. Standings tie-breaking relies on
// this order being stable.
var Directory = []Team{
	{ID: Giants, Name: "読売ジャイアンツ", ShortName: "巨", Color: "#F97316", League: Central},
	{ID: Hanshin, Name: "阪神タイガース", ShortName: "神", Color: "#FFE500", League: Central},
	{ID: BayStars, Name: "横浜DeNAベイスターズ", ShortName: "デ", Color: "#0EA5E9", League: Central},
	{ID: Carp, Name: "広島東洋カープ", ShortName: "広", Color: "#DC2626", League: Central},
	{ID: Swallows, Name: "東京ヤクルトスワローズ", ShortName: "ヤ", Color: "#059669", League: Central},
	{ID: Dragons, Name: "中日ドラゴンズ", ShortName: "中", Color: "#0284C7", League: Central},

	{ID: Hawks, Name: "福岡ソフトバンクホークス", ShortName: "ソ", Color: "#FCD34D", League: Pacific},
	{ID: Fighters, Name: "北海道日本ハムファイターズ", ShortName: "日", Color: "#0EA5E9", League: Pacific},
	{ID: Marines, Name: "千葉ロッテマリーンズ", ShortName: "ロ", Color: "#1E293B", League: Pacific},
	{ID: Eagles, Name: "東北楽天ゴールデンイーグルス", ShortName: "楽", Color: "#991B1B", League: Pacific},
	{ID: Buffaloes, Name: "オリックス・バファローズ", ShortName: "オ", Color: "#1E3A8A", League: Pacific},
	{ID: Lions, Name: "埼玉西武ライオンズ", ShortName: "西", Color: "#0369A1", League: Pacific},
}

var byID = func() map[ID]Team {
	m := make(map[ID]Team, len(Directory))
	for _, t := range Directory {
		m[t.ID] = t
	}
	return m
}()

// ByID returns the directory entry for an identifier.
func ByID(id ID) (Team, bool) {
	t, ok := byID[id]
	return t, ok
}

// ByLeague returns the directory entries for one league in canonical order.
func ByLeague(l League) []Team {
	var out []Team
	for _, t := range Directory {
		if t.League == l {
			out = append(out, t)
		}
	}
	return out
}

// variant maps one raw name fragment to its team. The table is ordered:
// substring resolution scans it top to bottom, so longer or less
// ambiguous fragments should come before single-character shorthands.
type variant struct {
	fragment string
	id       ID
}

// variants covers every fragment observed across the NPB page types:
// full franchise names, two-kanji abbreviations, single-kanji
// shorthands, and the full/half-width romanized DeNA forms. Adding a
// new fragment is a data change only.
var variants = []variant{
	{"読売ジャイアンツ", Giants},
	{"読売", Giants},
	{"巨人", Giants},
	{"巨", Giants},
	{"阪神タイガース", Hanshin},
	{"阪神", Hanshin},
	{"神", Hanshin},
	{"阪", Hanshin},
	{"横浜DeNAベイスターズ", BayStars},
	{"DeNA", BayStars},
	{"De", BayStars},
	{"Ｄ", BayStars},
	{"デ", BayStars},
	{"広島東洋カープ", Carp},
	{"広島", Carp},
	{"広", Carp},
	{"東京ヤクルトスワローズ", Swallows},
	{"ヤクルト", Swallows},
	{"ヤ", Swallows},
	{"中日ドラゴンズ", Dragons},
	{"中日", Dragons},
	{"中", Dragons},
	{"福岡ソフトバンクホークス", Hawks},
	{"ソフトバンク", Hawks},
	{"ソ", Hawks},
	{"北海道日本ハムファイターズ", Fighters},
	{"日本ハム", Fighters},
	{"日", Fighters},
	{"千葉ロッテマリーンズ", Marines},
	{"ロッテ", Marines},
	{"ロ", Marines},
	{"東北楽天ゴールデンイーグルス", Eagles},
	{"楽天", Eagles},
	{"楽", Eagles},
	{"オリックス・バファローズ", Buffaloes},
	{"オリックス", Buffaloes},
	{"オ", Buffaloes},
	{"埼玉西武ライオンズ", Lions},
	{"西武", Lions},
	{"西", Lions},
}

var exact = func() map[string]ID {
	m := make(map[string]ID, len(variants))
	for _, v := range variants {
		m[v.fragment] = v.id
	}
	return m
}()

// Resolve maps a raw name fragment from scraped markup to a team
// identifier. It tries an exact match on the trimmed text first, then a
// substring match in both directions (page types truncate and pad the
// same names differently), and returns Unknown when nothing matches.
func Resolve(raw string) ID {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Unknown
	}

	if id, ok := exact[name]; ok {
		return id
	}

	for _, v := range variants {
		if strings.Contains(name, v.fragment) || strings.Contains(v.fragment, name) {
			return v.id
		}
	}

	return Unknown
}
