// Package module implements the bank split module
package module

import (
	"strconv"

	"prodanalytics/internal/modkit"
	"prodanalytics/internal/modkit/repokit"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/platform/validate"
	"prodanalytics/internal/services/bank/domain"
	"prodanalytics/internal/services/bank/repo"
	"prodanalytics/internal/services/bank/service"
)

// Ports exposed by the bank module
type Ports struct {
	Runner   domain.RunnerPort
	Splitter domain.SplitterPort
}

// Module implements the bank split module
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

// New constructs the bank module. Options come from modkit.WithSettings or the
// environment; the selected publisher needs the matching store in deps
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
		return nil, perr.Rewrap(err, "bank options")
	}

	pub, err := publisher(deps, o)
	if err != nil {
		return nil, err
	}
	svc := service.New(domain.SplitOptions{Year: o.Year, CampaignID: o.CampaignID}, pub)

	name := b.Name
	if name == "" {
		name = "bank"
	}
	deps.Logger(name).Debug().Str("publish", o.Publish).Int("year", o.Year).Msg("bank module ready")

	return &Module{
		name:  name,
		opts:  o,
		ports: Ports{Runner: svc, Splitter: svc},
	}, nil
}

func publisher(deps modkit.Deps, o Options) (domain.Publisher, error) {
	switch o.Publish {
	case PublishPG:
		if deps.PG == nil {
			return nil, perr.Newf(perr.ErrorCodeUnavailable, "bank: publish=pg but postgres is not configured")
		}
		var hooks []repokit.BeginHook
		if o.StatementTimeout > 0 {
			hooks = append(hooks, repokit.SetLocal("statement_timeout", strconv.FormatInt(o.StatementTimeout.Milliseconds(), 10)))
		}
		return repo.NewPGPublisher(deps.PG, hooks...), nil
	case PublishCH:
		if deps.CH == nil {
			return nil, perr.Newf(perr.ErrorCodeUnavailable, "bank: publish=ch but clickhouse is not configured")
		}
		return repo.NewCHPublisher(deps.CH), nil
	}
	return nil, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Options returns the resolved settings
func (m *Module) Options() Options { return m.opts }
