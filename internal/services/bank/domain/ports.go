package domain

import (
	"context"
	"io"
)

// SplitOptions are the constants stamped onto every campaign row
type SplitOptions struct {
	Year       int `yaml:"year" validate:"gte=1900,lte=2100"`
	CampaignID int `yaml:"campaign_id" validate:"gte=1,lte=2147483647"`
}

// SplitterPort reshapes flat rows into the three tables
type SplitterPort interface {
	Split(rows []Flat) (Tables, error)
}

// Publisher loads split tables into a relational target
type Publisher interface {
	Publish(ctx context.Context, t Tables) error
}

// RunnerPort reads a flat file, splits it, writes the tables and publishes them if configured
type RunnerPort interface {
	Run(ctx context.Context, in io.Reader, outDir string) (Tables, error)
}
