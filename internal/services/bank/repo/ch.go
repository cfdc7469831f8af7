package repo

import (
	"context"

	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/platform/store"
	"prodanalytics/internal/services/bank/domain"
)

// schemaCH mirrors schemaPG. ClickHouse has no foreign keys; ReplacingMergeTree
// collapses rows re-published under the same key
var schemaCH = []string{
	`CREATE TABLE IF NOT EXISTS client (
		id             Int64,
		age            Int32,
		job            LowCardinality(String),
		marital        LowCardinality(String),
		education      Nullable(String),
		credit_default LowCardinality(String),
		housing        LowCardinality(String),
		loan           LowCardinality(String)
	) ENGINE = ReplacingMergeTree ORDER BY id`,
	`CREATE TABLE IF NOT EXISTS campaign (
		client_id                  Int64,
		number_contacts            Int32,
		contact_duration           Int32,
		pdays                      Int32,
		previous_campaign_contacts Int32,
		previous_outcome           Nullable(Int8),
		campaign_outcome           Int8,
		last_contact_date          Date,
		campaign_id                Int32
	) ENGINE = ReplacingMergeTree ORDER BY (campaign_id, client_id)`,
	`CREATE TABLE IF NOT EXISTS economics (
		client_id            Int64,
		emp_var_rate         Float64,
		cons_price_idx       Float64,
		euribor_three_months Float64,
		number_employed      Float64
	) ENGINE = ReplacingMergeTree ORDER BY client_id`,
}

// CHPublisher loads tables into ClickHouse with one batch per table
type CHPublisher struct {
	ch store.Clickhouse
}

var _ domain.Publisher = (*CHPublisher)(nil)

// NewCHPublisher constructs a ClickHouse publisher. ch must not be nil
func NewCHPublisher(ch store.Clickhouse) *CHPublisher {
	if ch == nil {
		panic("bank: nil clickhouse")
	}
	return &CHPublisher{ch: ch}
}

// Publish implements domain.Publisher. Batches are not transactional across tables
func (p *CHPublisher) Publish(ctx context.Context, t domain.Tables) error {
	for _, stmt := range schemaCH {
		if err := p.ch.Exec(ctx, stmt); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "bank: clickhouse schema")
		}
	}
	if t.Len() == 0 {
		return nil
	}

	batches := []struct {
		table string
		rows  [][]any
	}{
		{"client", chClients(t.Client)},
		{"campaign", chCampaigns(t.Campaign)},
		{"economics", chEconomics(t.Economics)},
	}
	for _, b := range batches {
		if err := p.ch.Insert(ctx, b.table, b.rows); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeDB, "bank: clickhouse insert %s", b.table)
		}
	}
	return nil
}

func chClients(xs []domain.Client) [][]any {
	out := make([][]any, len(xs))
	for i, c := range xs {
		out[i] = []any{c.ID, int32(c.Age), c.Job, c.Marital, c.Education, c.CreditDefault, c.Housing, c.Loan}
	}
	return out
}

func chCampaigns(xs []domain.Campaign) [][]any {
	out := make([][]any, len(xs))
	for i, c := range xs {
		var prev *int8
		if c.PreviousOutcome != nil {
			v := int8(*c.PreviousOutcome)
			prev = &v
		}
		out[i] = []any{
			c.ClientID, int32(c.NumberContacts), int32(c.ContactDuration), int32(c.Pdays),
			int32(c.PreviousCampaignContacts), prev, int8(c.CampaignOutcome), c.LastContactDate,
			int32(c.CampaignID),
		}
	}
	return out
}

func chEconomics(xs []domain.Economics) [][]any {
	out := make([][]any, len(xs))
	for i, e := range xs {
		out[i] = []any{e.ClientID, e.EmpVarRate, e.ConsPriceIdx, e.EuriborThreeMonths, e.NumberEmployed}
	}
	return out
}
