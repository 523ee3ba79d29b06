// Package sportkey derives the canonical sport key a handbook is grouped
// under from its source filename.
package sportkey

import (
	"path/filepath"
	"strings"
)

// override refines a leading token into a compound key by inspecting the
// full filename stem. Overrides are evaluated in order; first match wins.
type override struct {
	// trigger must appear in the stem for the family to apply.
	trigger string
	// variants map a secondary substring of the stem to the refined key,
	// checked in order so more specific substrings shadow shorter ones.
	variants []variant
	// fallback, if non-empty, is returned when the trigger matches but no
	// variant does.
	fallback string
}

type variant struct {
	substr string
	key    string
}

var overrides = []override{
	{
		trigger: "Aquatic",
		variants: []variant{
			{"Diving", "Aquatic_Diving"},
			{"Artistic Swimming", "Aquatic_ArtisticSwimming"},
			{"Water Polo", "Aquatic_WaterPolo"},
			{"Swimming", "Aquatic_Swimming"},
			{"OWS", "Aquatic_OWS"},
		},
	},
	{
		trigger: "Canoe",
		variants: []variant{
			{"Slalom", "Canoe_Slalom"},
			{"Sprint", "Canoe_Sprint"},
		},
	},
	{
		trigger: "Basketball",
		variants: []variant{
			{"3X3", "Basketball_3X3"},
		},
		fallback: "Basketball",
	},
	{
		trigger: "Shotgun",
		variants: []variant{
			{"Skeet Trap", "Shotgun_SkeetTrap"},
			{"Sporting Compak", "Shotgun_SportingCompak"},
		},
	},
	{
		trigger:  "Pistol and Rifle",
		fallback: "Shooting_PistolRifle",
	},
	{
		trigger:  "Triathlon",
		fallback: "Triathlon_Duathlon_Aquathlon",
	},
}

// Identify maps a source filename to its sport key. It is pure and total:
// unmapped filenames return the cleaned leading token of the stem.
func Identify(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	for _, o := range overrides {
		if !strings.Contains(stem, o.trigger) {
			continue
		}
		for _, v := range o.variants {
			if strings.Contains(stem, v.substr) {
				return v.key
			}
		}
		if o.fallback != "" {
			return o.fallback
		}
	}

	return leadingToken(stem)
}

// leadingToken takes the stem's leading segment (up to the first
// underscore, or the whole stem when none), drops incidental prefix words,
// and returns what remains.
func leadingToken(stem string) string {
	segment := stem
	underscored := false
	if i := strings.Index(stem, "_"); i >= 0 {
		segment = stem[:i]
		underscored = true
	}

	words := strings.Fields(segment)
	for len(words) > 0 && (words[0] == "Attachment" || words[0] == "for") {
		words = words[1:]
	}
	switch {
	case len(words) == 0:
		return strings.TrimSpace(segment)
	case underscored:
		// An underscore-delimited segment is one token even when it
		// contains spaces ("Sepak Takraw_TechHandbook" -> "Sepak Takraw").
		return strings.Join(words, " ")
	default:
		return words[0]
	}
}
