package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"time"

	"prodanalytics/internal/core/nps"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/nps/domain"
)

// DefaultDateLayout is the layout of response_date values
const DefaultDateLayout = "2006-01-02"

// Loader parses response files into classified record sets
type Loader struct {
	DateLayout string
}

// NewLoader returns a Loader; an empty layout means DefaultDateLayout
func NewLoader(layout string) Loader {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return Loader{DateLayout: layout}
}

// Load parses r, binding columns by header name. Every record gets channel
// and the category of its rating. Rows whose field count differs from the
// header, or whose date does not parse, are parse errors
func (l Loader) Load(r io.Reader, channel string) (domain.RecordSet, error) {
	layout := l.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perr.Parsef(nil, "empty file, no header")
	}
	if err != nil {
		return nil, readErr(err)
	}

	idx, err := bindColumns(header)
	if err != nil {
		return nil, err
	}

	var out domain.RecordSet
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readErr(err)
		}
		line, _ := cr.FieldPos(0)

		raw := row[idx.date]
		date, err := time.Parse(layout, raw)
		if err != nil {
			return nil, perr.Parsef(err, "line %d: %s %q", line, ColResponseDate, raw)
		}
		rt := row[idx.rating]
		rating := nps.ParseRating(rt)
		out = append(out, domain.Response{
			ResponseDate: date,
			RespondentID: row[idx.user],
			Rating:       rating,
			RatingText:   rt,
			Channel:      channel,
			Category:     nps.Categorize(rating),
		})
	}
	return out, nil
}

// LoadSource opens src, loads it under src.Channel and closes it
func (l Loader) LoadSource(ctx context.Context, op domain.Opener, src domain.Source) (rs domain.RecordSet, err error) {
	rc, err := op.Open(ctx, src.Location)
	if err != nil {
		return nil, perr.Resourcef(err, "open %s", src.Location)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = perr.Resourcef(cerr, "close %s", src.Location)
		}
	}()
	return l.Load(rc, src.Channel)
}

type columns struct{ date, user, rating int }

func bindColumns(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	var c columns
	for _, b := range []struct {
		name string
		dst  *int
	}{
		{ColResponseDate, &c.date},
		{ColUserID, &c.user},
		{ColRating, &c.rating},
	} {
		i, ok := pos[b.name]
		if !ok {
			return columns{}, perr.Parsef(nil, "header has no %s column", b.name)
		}
		*b.dst = i
	}
	return c, nil
}

// readErr separates malformed csv from failing reads
func readErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Parsef(pe.Err, "line %d", pe.Line)
	}
	return perr.Resourcef(err, "read")
}
