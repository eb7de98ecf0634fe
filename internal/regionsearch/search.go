package regionsearch

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/worldmap/internal/region"
)

type Match struct {
	Region region.Region
	Score  float64
	Source string
}

// Rank returns regions whose names resemble query, best first. An empty
// query matches nothing.
func Rank(regions []region.Region, query string, limit int) []Match {
	q := normalise(query)
	if q == "" {
		return nil
	}
	out := make([]Match, 0, len(regions))
	for _, r := range regions {
		name := normalise(r.Name)
		if name == "" {
			continue
		}
		if m, ok := score(name, q); ok {
			m.Region = r
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].Region.Name < out[j].Region.Name
		}
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func score(name, q string) (Match, bool) {
	switch {
	case name == q:
		return Match{Score: 1.0, Source: "exact"}, true
	case strings.HasPrefix(name, q):
		return Match{Score: 0.9, Source: "prefix"}, true
	case strings.Contains(name, q):
		return Match{Score: 0.8, Source: "substring"}, true
	}
	if len(q) < 3 {
		return Match{}, false
	}

	// Compare against the name prefix of the same length so partially
	// typed names still match, then against whole words.
	best := -1
	candidates := append([]string{name}, strings.Fields(name)...)
	if len(name) > len(q) {
		candidates = append(candidates, name[:len(q)])
	}
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(q, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		if best < 0 || dist < best {
			best = dist
		}
	}
	if best < 0 {
		return Match{}, false
	}
	return Match{Score: 0.72 - 0.08*float64(best), Source: "lev"}, true
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// normalise lowercases and keeps letters and digits; runs of separators
// become one space.
func normalise(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '-' || r == '_' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
