package module

import (
	"time"

	"prodanalytics/internal/platform/config"
)

// ConfigPrefix is the env prefix FromConfig reads
const ConfigPrefix = "BANK_"

// Publish targets
const (
	PublishNone = "none"
	PublishPG   = "pg"
	PublishCH   = "ch"
)

// Options holds configuration settings for the bank module
type Options struct {
	Year       int    `yaml:"year" validate:"gte=1900,lte=2100"`
	CampaignID int    `yaml:"campaign_id" validate:"gte=1,lte=2147483647"`
	Publish    string `yaml:"publish" validate:"oneof=none pg ch"`

	// StatementTimeout bounds each Postgres statement of a publish, zero means no limit
	StatementTimeout time.Duration `yaml:"statement_timeout" validate:"gte=0"`
}

// FromConfig reads BANK_* settings
func FromConfig(cfg config.Conf) Options { return fromConf(cfg.Prefix(ConfigPrefix)) }

func fromConf(c config.Conf) Options {
	return Options{
		Year:             c.MayInt("YEAR", 2022),
		CampaignID:       c.MayInt("CAMPAIGN_ID", 1),
		Publish:          c.MayEnum("PUBLISH", PublishNone, PublishNone, PublishPG, PublishCH),
		StatementTimeout: time.Duration(c.MayInt("STATEMENT_TIMEOUT_MS", 0)) * time.Millisecond,
	}
}
