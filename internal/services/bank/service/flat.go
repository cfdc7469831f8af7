package service

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/bank/domain"
)

// ReadFlat parses the flat marketing file. Columns bind by header name and
// may appear in any order; every column of domain.FlatColumns must exist
func ReadFlat(r io.Reader) ([]domain.Flat, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perr.Parsef(nil, "bank: empty file, no header")
	}
	if err != nil {
		return nil, csvErr(err)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	for _, c := range domain.FlatColumns {
		if _, ok := pos[c]; !ok {
			return nil, perr.Parsef(nil, "bank: header has no %s column", c)
		}
	}

	var out []domain.Flat
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, csvErr(err)
		}
		line, _ := cr.FieldPos(0)
		f := fields{rec: rec, pos: pos, line: line}

		row := domain.Flat{
			ClientID:      f.int64("client_id"),
			Age:           f.int("age"),
			Job:           f.str("job"),
			Marital:       f.str("marital"),
			Education:     f.str("education"),
			CreditDefault: f.str("credit_default"),
			Housing:       f.str("housing"),
			Loan:          f.str("loan"),
			Campaign:      f.int("campaign"),
			Month:         f.str("month"),
			DayOfWeek:     f.str("day_of_week"),
			Duration:      f.int("duration"),
			Pdays:         f.int("pdays"),
			Previous:      f.int("previous"),
			Poutcome:      f.str("poutcome"),
			Y:             f.str("y"),
			EmpVarRate:    f.float("emp_var_rate"),
			ConsPriceIdx:  f.float("cons_price_idx"),
			Euribor3m:     f.float("euribor3m"),
			NrEmployed:    f.float("nr_employed"),
			Line:          line,
		}
		if f.err != nil {
			return nil, f.err
		}
		out = append(out, row)
	}
}

// fields reads typed values from one record and keeps the first failure
type fields struct {
	rec  []string
	pos  map[string]int
	line int
	err  error
}

func (f *fields) str(col string) string { return strings.TrimSpace(f.rec[f.pos[col]]) }

func (f *fields) int64(col string) int64 {
	raw := f.str(col)
	v, err := strconv.ParseInt(raw, 10, 64)
	f.fail(err, col, raw)
	return v
}

// int rejects values outside int32, the width these columns are stored at
func (f *fields) int(col string) int {
	raw := f.str(col)
	v, err := strconv.ParseInt(raw, 10, 32)
	f.fail(err, col, raw)
	return int(v)
}

func (f *fields) float(col string) float64 {
	raw := f.str(col)
	v, err := strconv.ParseFloat(raw, 64)
	f.fail(err, col, raw)
	return v
}

func (f *fields) fail(err error, col, raw string) {
	if err != nil && f.err == nil {
		f.err = perr.Parsef(err, "bank: line %d: %s %q", f.line, col, raw)
	}
}

func csvErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Parsef(pe.Err, "bank: line %d", pe.Line)
	}
	return perr.Resourcef(err, "bank: read")
}
