// Package module implements the nps survey module
package module

import (
	"prodanalytics/internal/modkit"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/platform/validate"
	"prodanalytics/internal/services/nps/domain"
	"prodanalytics/internal/services/nps/ingest"
	"prodanalytics/internal/services/nps/service"
)

// Ports exposed by the nps module
type Ports struct {
	Combiner domain.CombinerPort
	Scorer   domain.ScorerPort
	Exporter domain.ExporterPort
}

// Module implements the nps survey module
type Module struct {
	name  string
	opts  Options
	ports Ports
}

var _ modkit.Builder = Build

// Build satisfies modkit.Builder
func Build(deps modkit.Deps, opts ...modkit.Option) (modkit.Module, error) {
	m, err := New(deps, opts...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// New constructs the nps module. Sources are opened through deps.Opener,
// the local filesystem when nil
func New(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(opts...)

	o, ok := b.Settings.(Options)
	if !ok {
		prefix := b.Prefix
		if prefix == "" {
			prefix = ConfigPrefix
		}
		o = fromConf(deps.Cfg.Prefix(prefix))
	}
	if err := validate.Struct(o); err != nil {
		return nil, perr.Rewrap(err, "nps options")
	}

	var op domain.Opener = ingest.OSOpener{}
	if deps.Opener != nil {
		op = deps.Opener
	}
	svc := service.New(op, service.Config{Workers: o.Workers, DateLayout: o.DateLayout})

	name := b.Name
	if name == "" {
		name = "nps"
	}
	deps.Logger(name).Debug().Int("workers", o.Workers).Msg("nps module ready")

	return &Module{
		name:  name,
		opts:  o,
		ports: Ports{Combiner: svc, Scorer: svc, Exporter: svc},
	}, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Options returns the resolved settings
func (m *Module) Options() Options { return m.opts }
