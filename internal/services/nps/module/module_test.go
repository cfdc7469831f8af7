package module

import (
	"context"
	"testing"
	"testing/fstest"

	"prodanalytics/internal/modkit"
	"prodanalytics/internal/modkit/module"
	"prodanalytics/internal/platform/config"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/nps/domain"
	"prodanalytics/internal/services/nps/ingest"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("NPS_WORKERS", "8")
	o := FromConfig(config.New())
	if o.Workers != 8 || o.DateLayout != ingest.DefaultDateLayout {
		t.Fatalf("FromConfig = %+v", o)
	}
}

func TestNew_WiresPorts(t *testing.T) {
	fs := fstest.MapFS{
		"a.csv": {Data: []byte("response_date,user_id,nps_rating\n2023-01-02,u1,10\n2023-01-03,u2,3\n")},
	}
	m, err := New(modkit.Deps{Cfg: config.New(), Opener: ingest.FSOpener{FS: fs}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Name() != "nps" || m.Options().Workers != 1 {
		t.Fatalf("module = %s %+v", m.Name(), m.Options())
	}

	comb := module.MustPortsOf[domain.CombinerPort](m)
	res, err := comb.Combine(context.Background(), []domain.Source{{Location: "a.csv", Channel: "email"}})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	score, err := module.MustPortsOf[domain.ScorerPort](m).OverallScore(res.Records)
	if err != nil || score != 0 {
		t.Fatalf("score = %v (%v)", score, err)
	}
	if _, ok := module.PortsOf[domain.ExporterPort](m); !ok {
		t.Fatalf("exporter port missing")
	}
}

func TestNew_PrefixNameSettings(t *testing.T) {
	t.Setenv("SURVEY_WORKERS", "3")
	m, err := New(modkit.Deps{Cfg: config.New()}, modkit.WithConfigPrefix("SURVEY_"), modkit.WithName("survey"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "survey" || m.Options().Workers != 3 {
		t.Fatalf("module = %s %+v", m.Name(), m.Options())
	}

	m, err = New(modkit.Deps{}, modkit.WithSettings(Options{Workers: 5, DateLayout: "02/01/2006"}))
	if err != nil {
		t.Fatal(err)
	}
	if m.Options().Workers != 5 {
		t.Fatalf("settings ignored: %+v", m.Options())
	}
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	cases := map[string]Options{
		"zero workers": {Workers: 0, DateLayout: ingest.DefaultDateLayout},
		"too many":     {Workers: 65, DateLayout: ingest.DefaultDateLayout},
		"no layout":    {Workers: 1},
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Build(modkit.Deps{}, modkit.WithSettings(o))
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestRegisterModule(t *testing.T) {
	module.Reset()
	t.Cleanup(module.Reset)

	m, err := New(modkit.Deps{})
	if err != nil {
		t.Fatal(err)
	}
	module.RegisterModule(m)
	p, ok := module.PortsAs[Ports]("nps")
	if !ok || p.Combiner == nil {
		t.Fatalf("registered ports = %+v", p)
	}
}
