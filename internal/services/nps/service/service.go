// Package service contains the survey pipeline workflows: combine, score and export
package service

import (
	"context"

	"prodanalytics/internal/platform/logger"
	"prodanalytics/internal/services/nps/domain"
	"prodanalytics/internal/services/nps/ingest"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service is the public service port
type Service interface {
	domain.CombinerPort
	domain.ScorerPort
	domain.ExporterPort
}

// Config controls combine behavior
type Config struct {
	// Workers > 1 checks and loads sources concurrently; output order is unchanged
	Workers int

	// DateLayout is the time layout of response_date, empty means ingest.DefaultDateLayout
	DateLayout string
}

// Svc implements Service
type Svc struct {
	opener  domain.Opener
	loader  ingest.Loader
	workers int
	layout  string
	newID   func() string
}

var _ Service = (*Svc)(nil)

// New constructs the service
func New(op domain.Opener, cfg Config) *Svc {
	if op == nil {
		panic("nps.Service requires a non nil Opener")
	}
	w := cfg.Workers
	if w < 1 {
		w = 1
	}
	l := ingest.NewLoader(cfg.DateLayout)
	return &Svc{
		opener:  op,
		loader:  l,
		workers: w,
		layout:  l.DateLayout,
		newID:   uuid.NewString,
	}
}

// outcome is what one source produced: records, or a header rejection
type outcome struct {
	valid   bool
	records domain.RecordSet
}

// Combine checks every source in order, loads the valid ones and concatenates
// them. Rejected headers become diagnostics; open, read and parse failures abort
func (s *Svc) Combine(ctx context.Context, sources []domain.Source) (domain.Result, error) {
	res := domain.Result{RunID: s.newID(), Records: domain.RecordSet{}}
	ctx = logger.WithRun(ctx, res.RunID)
	log := logger.C(ctx)

	outs := make([]outcome, len(sources))
	if err := s.collect(ctx, sources, outs); err != nil {
		return domain.Result{}, err
	}

	for i, src := range sources {
		o := outs[i]
		if !o.valid {
			d := domain.Diagnostic{
				Channel:  src.Channel,
				Location: src.Location,
				Reason:   "header is not " + ingest.RequiredHeader,
			}
			res.Diagnostics = append(res.Diagnostics, d)
			log.Warn().Str("channel", src.Channel).Str("location", src.Location).Msg(d.Message())
			continue
		}
		res.Records = append(res.Records, o.records...)
	}

	log.Info().
		Int("sources", len(sources)).
		Int("skipped", len(res.Diagnostics)).
		Int("records", res.Records.Len()).
		Msg("combine done")
	return res, nil
}

// collect fills outs in input order, sequentially or with a bounded errgroup
func (s *Svc) collect(ctx context.Context, sources []domain.Source, outs []outcome) error {
	if s.workers <= 1 || len(sources) <= 1 {
		for i, src := range sources {
			o, err := s.one(ctx, src)
			if err != nil {
				return err
			}
			outs[i] = o
		}
		return nil
	}

	// every source runs; the failure reported is the earliest in input order
	errs := make([]error, len(sources))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, src := range sources {
		g.Go(func() error {
			outs[i], errs[i] = s.one(ctx, src)
			return nil
		})
	}
	_ = g.Wait()
	return firstErr(errs)
}

func firstErr(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Svc) one(ctx context.Context, src domain.Source) (outcome, error) {
	ctx = logger.WithChannel(ctx, src.Channel)

	ok, err := ingest.Check(ctx, s.opener, src.Location)
	if err != nil {
		return outcome{}, rewrapSource(err, "check", src)
	}
	if !ok {
		return outcome{}, nil
	}

	rs, err := s.loader.LoadSource(ctx, s.opener, src)
	if err != nil {
		return outcome{}, rewrapSource(err, "load", src)
	}
	logger.C(ctx).Debug().Str("location", src.Location).Int("records", rs.Len()).Msg("source loaded")
	return outcome{valid: true, records: rs}, nil
}
