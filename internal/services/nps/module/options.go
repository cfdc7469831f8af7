package module

import (
	"prodanalytics/internal/platform/config"
	"prodanalytics/internal/services/nps/ingest"
)

// ConfigPrefix is the env prefix FromConfig reads
const ConfigPrefix = "NPS_"

// Options holds configuration settings for the nps module
type Options struct {
	Workers    int    `yaml:"workers" validate:"gte=1,lte=64"`
	DateLayout string `yaml:"date_layout" validate:"required"`
}

// FromConfig reads NPS_* settings
func FromConfig(cfg config.Conf) Options { return fromConf(cfg.Prefix(ConfigPrefix)) }

func fromConf(c config.Conf) Options {
	return Options{
		Workers:    c.MayInt("WORKERS", 1),
		DateLayout: c.MayString("DATE_LAYOUT", ingest.DefaultDateLayout),
	}
}
