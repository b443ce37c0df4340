package commands

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sandeepkv93/taskline/internal/arguments"
)

const previewThreshold = 50

// Closeness scores two strings from 0 to 100 using Levenshtein distance,
// ignoring case. Empty input scores 0.
func Closeness(a, b string) float64 {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	return 100 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)*100
}

// Preview returns summaries for the command being typed. An exact keyword
// returns only that command; otherwise commands are ranked by closeness.
func (r *Registry) Preview(partial string, limit int) []Summary {
	r.build()
	keyword, _ := arguments.SplitKeyword(partial)
	if keyword == "" {
		return clip(r.Summaries(), limit)
	}
	if f, ok := r.index[keyword]; ok {
		return clip(f(r.env).Summaries(), limit)
	}

	type scored struct {
		entry
		score float64
	}
	var ranked []scored
	for _, e := range r.entries {
		score := Closeness(keyword, e.name)
		if strings.HasPrefix(e.name, keyword) {
			score = max(score, 100-float64(len(e.name)-len(keyword)))
		}
		if score >= previewThreshold {
			ranked = append(ranked, scored{entry: e, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var out []Summary
	for _, s := range ranked {
		out = append(out, s.factory(r.env).Summaries()...)
	}
	return clip(out, limit)
}

func clip(in []Summary, limit int) []Summary {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
