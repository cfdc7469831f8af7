// Package repo loads split bank tables into Postgres or ClickHouse
package repo

import (
	"context"
	"fmt"
	"strings"

	"prodanalytics/internal/modkit/repokit"
	"prodanalytics/internal/platform/store"
	"prodanalytics/internal/services/bank/domain"
)

// maxRowsPerInsert keeps a single statement under the 65535 bind parameter cap
const maxRowsPerInsert = 1000

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the Postgres surface of the bank tables
type Storage interface {
	EnsureSchema(ctx context.Context) error
	InsertClients(ctx context.Context, xs []domain.Client) error
	InsertCampaigns(ctx context.Context, xs []domain.Campaign) error
	InsertEconomics(ctx context.Context, xs []domain.Economics) error

	CountClients(ctx context.Context, ids []int64) (int64, error)
	CountCampaigns(ctx context.Context, campaignIDs, clientIDs []int64) (int64, error)
	CountEconomics(ctx context.Context, clientIDs []int64) (int64, error)
}

// schemaPG is applied statement by statement; client must exist before the FKs
var schemaPG = []string{
	`CREATE TABLE IF NOT EXISTS client (
		id             bigint PRIMARY KEY,
		age            integer NOT NULL,
		job            text NOT NULL,
		marital        text NOT NULL,
		education      text,
		credit_default text NOT NULL,
		housing        text NOT NULL,
		loan           text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS campaign (
		campaign_id                integer NOT NULL,
		client_id                  bigint NOT NULL REFERENCES client (id),
		number_contacts            integer NOT NULL,
		contact_duration           integer NOT NULL,
		pdays                      integer NOT NULL,
		previous_campaign_contacts integer NOT NULL,
		previous_outcome           smallint,
		campaign_outcome           smallint NOT NULL,
		last_contact_date          date NOT NULL,
		PRIMARY KEY (campaign_id, client_id)
	)`,
	`CREATE TABLE IF NOT EXISTS economics (
		client_id            bigint PRIMARY KEY REFERENCES client (id),
		emp_var_rate         double precision NOT NULL,
		cons_price_idx       double precision NOT NULL,
		euribor_three_months double precision NOT NULL,
		number_employed      double precision NOT NULL
	)`,
}

// EnsureSchema implements Storage
func (s *pg) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaPG {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertClients implements Storage. Rows already present are kept
func (s *pg) InsertClients(ctx context.Context, xs []domain.Client) error {
	return s.insert(ctx, "client", domain.ClientColumns, "(id)", len(xs), func(i int) []any {
		c := xs[i]
		return []any{c.ID, c.Age, c.Job, c.Marital, c.Education, c.CreditDefault, c.Housing, c.Loan}
	})
}

// InsertCampaigns implements Storage
func (s *pg) InsertCampaigns(ctx context.Context, xs []domain.Campaign) error {
	return s.insert(ctx, "campaign", domain.CampaignColumns, "(campaign_id, client_id)", len(xs), func(i int) []any {
		c := xs[i]
		return []any{
			c.ClientID, c.NumberContacts, c.ContactDuration, c.Pdays, c.PreviousCampaignContacts,
			c.PreviousOutcome, c.CampaignOutcome, c.LastContactDate, c.CampaignID,
		}
	})
}

// InsertEconomics implements Storage
func (s *pg) InsertEconomics(ctx context.Context, xs []domain.Economics) error {
	return s.insert(ctx, "economics", domain.EconomicsColumns, "(client_id)", len(xs), func(i int) []any {
		e := xs[i]
		return []any{e.ClientID, e.EmpVarRate, e.ConsPriceIdx, e.EuriborThreeMonths, e.NumberEmployed}
	})
}

// CountClients implements Storage. It counts the ids present in client
func (s *pg) CountClients(ctx context.Context, ids []int64) (int64, error) {
	return s.count(ctx, "client", `SELECT count(*) FROM client WHERE id = ANY($1::bigint[])`, ids)
}

// CountCampaigns implements Storage. The two slices are parallel key columns
func (s *pg) CountCampaigns(ctx context.Context, campaignIDs, clientIDs []int64) (int64, error) {
	return s.count(ctx, "campaign", `SELECT count(*) FROM campaign c
		JOIN unnest($1::bigint[], $2::bigint[]) AS k (campaign_id, client_id)
		ON c.campaign_id = k.campaign_id AND c.client_id = k.client_id`, campaignIDs, clientIDs)
}

// CountEconomics implements Storage
func (s *pg) CountEconomics(ctx context.Context, clientIDs []int64) (int64, error) {
	return s.count(ctx, "economics", `SELECT count(*) FROM economics WHERE client_id = ANY($1::bigint[])`, clientIDs)
}

func (s *pg) count(ctx context.Context, table, sql string, args ...any) (int64, error) {
	n, err := store.Scalar[int64](ctx, s.q, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// insert writes n rows as multi row INSERTs of at most maxRowsPerInsert rows each
func (s *pg) insert(ctx context.Context, table string, cols []string, conflict string, n int, row func(int) []any) error {
	for lo := 0; lo < n; lo += maxRowsPerInsert {
		hi := min(lo+maxRowsPerInsert, n)
		sql, args := insertSQL(table, cols, conflict, lo, hi, row)
		if _, err := s.q.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert %s rows %d..%d: %w", table, lo, hi-1, err)
		}
	}
	return nil
}

func insertSQL(table string, cols []string, conflict string, lo, hi int, row func(int) []any) (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", table, strings.Join(cols, ", "))

	args := make([]any, 0, (hi-lo)*len(cols))
	for i := lo; i < hi; i++ {
		if i > lo {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for j := range cols {
			if j > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", len(args)+j+1)
		}
		sb.WriteByte(')')
		args = append(args, row(i)...)
	}
	// re-running a split is idempotent
	sb.WriteString(" ON CONFLICT " + conflict + " DO NOTHING")
	return sb.String(), args
}
