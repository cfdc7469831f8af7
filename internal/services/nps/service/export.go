package service

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/nps/domain"
)

// ExportHeader is the header row written by Export
var ExportHeader = []string{"response_date", "user_id", "nps_rating", "source", "nps_group"}

// Export writes rs as comma separated text, header first, one row per record
func (s *Svc) Export(w io.Writer, rs domain.RecordSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return perr.Resourcef(err, "export header")
	}
	row := make([]string, len(ExportHeader))
	for i := range rs {
		r := &rs[i]
		row[0] = r.ResponseDate.Format(s.layout)
		row[1] = r.RespondentID
		row[2] = ratingText(r)
		row[3] = r.Channel
		row[4] = string(r.Category)
		if err := cw.Write(row); err != nil {
			return perr.Resourcef(err, "export row %d", i+1)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return perr.Resourcef(err, "export flush")
	}
	return nil
}

// ratingText prefers the source text so exports round trip
func ratingText(r *domain.Response) string {
	if r.RatingText != "" || math.IsNaN(r.Rating) {
		return r.RatingText
	}
	return strconv.FormatFloat(r.Rating, 'f', -1, 64)
}
