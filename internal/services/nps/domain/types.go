// Package domain holds the record and source types of the survey pipeline
package domain

import (
	"sort"
	"time"

	"prodanalytics/internal/core/nps"
)

// Response is one respondent's answer, exported as response_date, user_id,
// nps_rating, source and nps_group.
// Category is always Categorize(Rating); Rating is NaN for non-numeric text,
// so RatingText keeps the source text for export
type Response struct {
	ResponseDate time.Time
	RespondentID string
	Rating       float64
	RatingText   string
	Channel      string
	Category     nps.Category
}

// RecordSet is an ordered collection of responses
type RecordSet []Response

// Len returns the number of records
func (rs RecordSet) Len() int { return len(rs) }

// Categories returns the category of every record in order
func (rs RecordSet) Categories() []nps.Category {
	out := make([]nps.Category, len(rs))
	for i := range rs {
		out[i] = rs[i].Category
	}
	return out
}

// Channels returns the distinct channels in natural sort order
func (rs RecordSet) Channels() []string {
	seen := map[string]struct{}{}
	var out []string
	for i := range rs {
		if _, ok := seen[rs[i].Channel]; ok {
			continue
		}
		seen[rs[i].Channel] = struct{}{}
		out = append(out, rs[i].Channel)
	}
	sort.Strings(out)
	return out
}

// ByChannel partitions the set by channel. Every record lands in exactly one
// group and keeps its relative order
func (rs RecordSet) ByChannel() map[string]RecordSet {
	out := map[string]RecordSet{}
	for i := range rs {
		out[rs[i].Channel] = append(out[rs[i].Channel], rs[i])
	}
	return out
}

// Source describes one input file and the channel its responses came from
type Source struct {
	Location string `yaml:"location" json:"location" validate:"required"`
	Channel  string `yaml:"channel" json:"channel" validate:"required"`
}

// Sources is an ordered source collection; locations are unique
type Sources struct {
	Items []Source `yaml:"sources" json:"sources" validate:"unique=Location,dive"`
}

// Diagnostic reports a source that was skipped because its header did not match
type Diagnostic struct {
	Channel  string `json:"channel"`
	Location string `json:"location"`
	Reason   string `json:"reason"`
}

// Message is the human-readable line printed for a skipped source
func (d Diagnostic) Message() string {
	return d.Channel + " is not a valid file and will not be added."
}

// Result is the outcome of combining a source collection
type Result struct {
	RunID       string       `json:"run_id"`
	Records     RecordSet    `json:"records"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}
