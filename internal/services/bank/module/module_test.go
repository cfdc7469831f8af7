package module

import (
	"context"
	"strings"
	"testing"
	"time"

	"prodanalytics/internal/modkit"
	"prodanalytics/internal/modkit/module"
	"prodanalytics/internal/modkit/repokit"
	"prodanalytics/internal/platform/config"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/platform/store"
	"prodanalytics/internal/services/bank/domain"
)

type nopTx struct{ execs []string }

func (n *nopTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(n) }
func (n *nopTx) Exec(_ context.Context, sql string, _ ...any) (repokit.CommandTag, error) {
	n.execs = append(n.execs, sql)
	return nil, nil
}
func (n *nopTx) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (n *nopTx) QueryRow(_ context.Context, _ string, args ...any) repokit.Row {
	return keyCount(len(args[0].([]int64)))
}

// keyCount answers a count query as if every key were present
type keyCount int64

func (k keyCount) Scan(dest ...any) error {
	*(dest[0].(*int64)) = int64(k)
	return nil
}

type nopCH struct{ store.Clickhouse }

func TestFromConfig(t *testing.T) {
	t.Setenv("BANK_YEAR", "2019")
	t.Setenv("BANK_PUBLISH", "PG")
	t.Setenv("BANK_STATEMENT_TIMEOUT_MS", "1500")

	o := FromConfig(config.New())
	if o.Year != 2019 || o.CampaignID != 1 || o.Publish != PublishPG || o.StatementTimeout != 1500*time.Millisecond {
		t.Fatalf("FromConfig = %+v", o)
	}
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(modkit.Deps{Cfg: config.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Name() != "bank" || m.Options().Publish != PublishNone || m.Options().Year != 2022 {
		t.Fatalf("module = %s %+v", m.Name(), m.Options())
	}
	if _, ok := module.PortsOf[domain.RunnerPort](m); !ok {
		t.Fatalf("runner port missing")
	}
	if _, ok := module.PortsOf[domain.SplitterPort](m); !ok {
		t.Fatalf("splitter port missing")
	}
}

func TestNew_ConfigPrefixAndName(t *testing.T) {
	t.Setenv("MKT_CAMPAIGN_ID", "4")
	m, err := New(modkit.Deps{Cfg: config.New()}, modkit.WithConfigPrefix("MKT_"), modkit.WithName("marketing"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "marketing" || m.Options().CampaignID != 4 {
		t.Fatalf("module = %s %+v", m.Name(), m.Options())
	}
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	cases := map[string]Options{
		"year":                   {Year: 1066, CampaignID: 1, Publish: PublishNone},
		"campaign id":            {Year: 2022, CampaignID: 0, Publish: PublishNone},
		"campaign id over int32": {Year: 2022, CampaignID: 1 << 31, Publish: PublishNone},
		"publish":                {Year: 2022, CampaignID: 1, Publish: "mysql"},
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(modkit.Deps{}, modkit.WithSettings(o))
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestNew_PublisherNeedsStore(t *testing.T) {
	for _, target := range []string{PublishPG, PublishCH} {
		o := Options{Year: 2022, CampaignID: 1, Publish: target}
		_, err := New(modkit.Deps{}, modkit.WithSettings(o))
		if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("%s: want unavailable, got %v", target, err)
		}
	}

	o := Options{Year: 2022, CampaignID: 1, Publish: PublishCH}
	if _, err := New(modkit.Deps{CH: nopCH{}}, modkit.WithSettings(o)); err != nil {
		t.Fatalf("ch with store: %v", err)
	}
}

func TestNew_PGPublisherWithTimeout(t *testing.T) {
	tx := &nopTx{}
	o := Options{Year: 2022, CampaignID: 1, Publish: PublishPG, StatementTimeout: 2 * time.Second}
	m, err := Build(modkit.Deps{PG: tx}, modkit.WithSettings(o))
	if err != nil {
		t.Fatal(err)
	}

	runner := module.MustPortsOf[domain.RunnerPort](m)
	in := "client_id,age,job,marital,education,credit_default,housing,loan,campaign,month,day_of_week,duration,pdays,previous,poutcome,y,emp_var_rate,cons_price_idx,euribor3m,nr_employed\n" +
		"0,56,admin.,married,basic.4y,no,no,no,1,may,mon,261,999,0,nonexistent,no,1.1,93.994,4.857,5191.0\n"
	if _, err := runner.Run(context.Background(), strings.NewReader(in), t.TempDir()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tx.execs) == 0 || !strings.Contains(tx.execs[0], "set_config") {
		t.Fatalf("statement_timeout hook did not run: %v", tx.execs)
	}
}
