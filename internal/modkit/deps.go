package modkit

import (
	"prodanalytics/internal/modkit/repokit"
	"prodanalytics/internal/platform/config"
	"prodanalytics/internal/platform/logger"
	"prodanalytics/internal/platform/store"
	"prodanalytics/internal/services/nps/domain"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// Opener resolves survey source locations, nil means the local filesystem
	Opener domain.Opener

	// PG and CH are nil unless a publisher asked for them
	PG repokit.TxRunner
	CH store.Clickhouse
}

// Logger returns Log or a child of the root logger named after component
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}
