package nps

import (
	"sort"

	perr "prodanalytics/internal/platform/errors"
)

// Counts is a tally per category. NewCounts seeds every category with zero
// so lookups for promoter and detractor never miss
type Counts map[Category]int

// NewCounts returns a tally with all four categories at zero
func NewCounts() Counts {
	c := make(Counts, len(ordered))
	for _, k := range ordered {
		c[k] = 0
	}
	return c
}

// Add counts one occurrence of cat. Unknown values are folded into Invalid
func (c Counts) Add(cat Category) {
	if !cat.Valid() {
		cat = Invalid
	}
	c[cat]++
}

// Total is the number of tallied records across all categories
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Tally counts cats into a fresh seeded tally
func Tally(cats []Category) Counts {
	c := NewCounts()
	for _, cat := range cats {
		c.Add(cat)
	}
	return c
}

// Score returns (promoters - detractors) / total * 100.
// Invalid records stay in the denominator. An empty tally is an aggregation error
func Score(c Counts) (float64, error) {
	total := c.Total()
	if total == 0 {
		return 0, perr.Aggregationf("nps: no records to score")
	}
	return float64(c[Promoter]-c[Detractor]) / float64(total) * 100, nil
}

// ChannelScore is the score of one channel's subset
type ChannelScore struct {
	Channel string  `json:"channel"`
	Score   float64 `json:"score"`
	Counts  Counts  `json:"counts"`
	Total   int     `json:"total"`
}

// ScoreGroups scores each group independently and returns the results sorted by key
func ScoreGroups(groups map[string][]Category) ([]ChannelScore, error) {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ChannelScore, 0, len(keys))
	for _, k := range keys {
		c := Tally(groups[k])
		s, err := Score(c)
		if err != nil {
			return nil, perr.Rewrap(err, "channel %q", k)
		}
		out = append(out, ChannelScore{Channel: k, Score: s, Counts: c, Total: c.Total()})
	}
	return out, nil
}
