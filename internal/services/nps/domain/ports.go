package domain

import (
	"context"
	"io"

	"prodanalytics/internal/core/nps"
)

// Opener resolves a source location to a readable stream. Callers close it
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(ctx context.Context, location string) (io.ReadCloser, error)

// Open calls f
func (f OpenerFunc) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	return f(ctx, location)
}

// CombinerPort validates, loads and concatenates sources
type CombinerPort interface {
	Combine(ctx context.Context, sources []Source) (Result, error)
}

// ScorerPort reduces a classified record set to scores
type ScorerPort interface {
	OverallScore(rs RecordSet) (float64, error)
	ScoreByChannel(rs RecordSet) ([]nps.ChannelScore, error)
}

// ExporterPort writes a record set as delimited text
type ExporterPort interface {
	Export(w io.Writer, rs RecordSet) error
}
