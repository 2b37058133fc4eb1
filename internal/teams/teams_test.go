package teams

import "testing"

func TestResolveExact(t *testing.T) {
	tests := []struct {
		raw      string
		expected ID
	}{
		{"巨", Giants},
		{"巨人", Giants},
		{"読売", Giants},
		{"神", Hanshin},
		{"阪", Hanshin},
		{"阪神", Hanshin},
		{"中", Dragons},
		{"中日", Dragons},
		{"広", Carp},
		{"広島", Carp},
		{"Ｄ", BayStars},
		{"De", BayStars},
		{"デ", BayStars},
		{"DeNA", BayStars},
		{"ヤ", Swallows},
		{"ヤクルト", Swallows},
		{"ソ", Hawks},
		{"ソフトバンク", Hawks},
		{"西", Lions},
		{"西武", Lions},
		{"楽", Eagles},
		{"楽天", Eagles},
		{"ロ", Marines},
		{"ロッテ", Marines},
		{"日", Fighters},
		{"日本ハム", Fighters},
		{"オ", Buffaloes},
		{"オリックス", Buffaloes},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Resolve(tt.raw); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestResolveTrimsWhitespace(t *testing.T) {
	for _, raw := range []string{"巨", "ヤクルト", "DeNA"} {
		plain := Resolve(raw)
		padded := Resolve("  " + raw + "\t ")
		if plain != padded {
			t.Errorf("Resolve(%q) = %q but padded variant resolved to %q", raw, plain, padded)
		}
	}
}

func TestResolveSubstring(t *testing.T) {
	tests := []struct {
		raw      string
		expected ID
	}{
		// Raw text containing a known fragment.
		{"読売ジャイアンツ（東京）", Giants},
		{"福岡ソフトバンクホークス", Hawks},
		// Raw text that is a truncation of a known fragment.
		{"オリックス・バ", Buffaloes},
	}

	for _, tt := range tests {
		if got := Resolve(tt.raw); got != tt.expected {
			t.Errorf("Resolve(%q) = %q, expected %q", tt.raw, got, tt.expected)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, raw := range []string{"XYZ", "", "   ", "Yankees"} {
		if got := Resolve(raw); got != Unknown {
			t.Errorf("Resolve(%q) = %q, expected Unknown", raw, got)
		}
	}
}

func TestDirectoryPartition(t *testing.T) {
	if len(Directory) != 12 {
		t.Fatalf("directory has %d teams, expected 12", len(Directory))
	}

	central := ByLeague(Central)
	pacific := ByLeague(Pacific)
	if len(central) != 6 || len(pacific) != 6 {
		t.Errorf("league split %d/%d, expected 6/6", len(central), len(pacific))
	}

	for _, team := range Directory {
		got, ok := ByID(team.ID)
		if !ok || got.ID != team.ID {
			t.Errorf("ByID(%q) lookup failed", team.ID)
		}
	}

	if _, ok := ByID(Unknown); ok {
		t.Error("Unknown must not be a directory entry")
	}
}
