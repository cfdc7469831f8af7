// Package service splits the flat marketing dataset into client, campaign and economics tables
package service

import (
	"context"
	"io"

	"prodanalytics/internal/platform/logger"
	"prodanalytics/internal/services/bank/domain"

	"github.com/google/uuid"
)

// Service is the public service port
type Service interface {
	domain.SplitterPort
	domain.RunnerPort
}

// Svc implements Service
type Svc struct {
	opt domain.SplitOptions
	pub domain.Publisher
}

var _ Service = (*Svc)(nil)

// New constructs the service. pub is optional; nil means files only
func New(opt domain.SplitOptions, pub domain.Publisher) *Svc {
	if opt.Year == 0 {
		opt.Year = 2022
	}
	if opt.CampaignID == 0 {
		opt.CampaignID = 1
	}
	return &Svc{opt: opt, pub: pub}
}

// Split implements domain.SplitterPort
func (s *Svc) Split(rows []domain.Flat) (domain.Tables, error) {
	return Split(rows, s.opt)
}

// Run reads in, splits it, writes the tables under outDir and publishes them
// when a publisher is configured. Nothing is published if writing fails
func (s *Svc) Run(ctx context.Context, in io.Reader, outDir string) (domain.Tables, error) {
	ctx = logger.WithRun(ctx, uuid.NewString())
	log := logger.C(ctx)

	rows, err := ReadFlat(in)
	if err != nil {
		return domain.Tables{}, err
	}
	t, err := s.Split(rows)
	if err != nil {
		return domain.Tables{}, err
	}
	if err := WriteTables(outDir, t); err != nil {
		return domain.Tables{}, err
	}
	log.Info().Int("rows", t.Len()).Str("dir", outDir).Msg("bank tables written")

	if s.pub != nil {
		if err := s.pub.Publish(ctx, t); err != nil {
			return t, err
		}
		log.Info().Int("rows", t.Len()).Msg("bank tables published")
	}
	return t, nil
}
