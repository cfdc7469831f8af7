package service

import (
	"prodanalytics/internal/core/nps"
	"prodanalytics/internal/services/nps/domain"
)

// OverallScore scores every record in rs. Invalid ratings count toward the total
func (s *Svc) OverallScore(rs domain.RecordSet) (float64, error) {
	return nps.Score(nps.Tally(rs.Categories()))
}

// ScoreByChannel scores each channel's subset, ordered by channel name.
// An empty set yields no entries
func (s *Svc) ScoreByChannel(rs domain.RecordSet) ([]nps.ChannelScore, error) {
	parts := rs.ByChannel()
	groups := make(map[string][]nps.Category, len(parts))
	for ch, sub := range parts {
		groups[ch] = sub.Categories()
	}
	return nps.ScoreGroups(groups)
}
