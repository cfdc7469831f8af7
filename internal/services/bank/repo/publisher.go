package repo

import (
	"context"

	"prodanalytics/internal/modkit/repokit"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/bank/domain"
)

// PGPublisher loads tables into Postgres inside one transaction
type PGPublisher struct {
	tx     repokit.TxRunner
	binder repokit.Binder[Storage]
}

var _ domain.Publisher = (*PGPublisher)(nil)

// NewPGPublisher constructs a Postgres publisher; hooks run at the start of every tx
func NewPGPublisher(tx repokit.TxRunner, hooks ...repokit.BeginHook) *PGPublisher {
	if tx == nil {
		panic("bank: nil tx runner")
	}
	return &PGPublisher{tx: repokit.WithBeginHooks(tx, hooks...), binder: NewPG()}
}

// Publish implements domain.Publisher. Either every table is loaded or none is
func (p *PGPublisher) Publish(ctx context.Context, t domain.Tables) error {
	err := repokit.WithTx(ctx, p.tx, p.binder, func(s Storage) error {
		if err := s.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := s.InsertClients(ctx, t.Client); err != nil {
			return err
		}
		if err := s.InsertCampaigns(ctx, t.Campaign); err != nil {
			return err
		}
		if err := s.InsertEconomics(ctx, t.Economics); err != nil {
			return err
		}
		return verify(ctx, s, t)
	})
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.FromPostgres(err, "bank: publish postgres")
}

// verify reads back every published key. Rows that already existed count as
// present; anything missing fails the tx
func verify(ctx context.Context, s Storage, t domain.Tables) error {
	var clients, campaigns, economics keySet
	for _, c := range t.Client {
		clients.add(c.ID, 0)
	}
	for _, c := range t.Campaign {
		campaigns.add(int64(c.CampaignID), c.ClientID)
	}
	for _, e := range t.Economics {
		economics.add(e.ClientID, 0)
	}

	checks := []struct {
		table string
		keys  keySet
		count func() (int64, error)
	}{
		{"client", clients, func() (int64, error) { return s.CountClients(ctx, clients.a) }},
		{"campaign", campaigns, func() (int64, error) { return s.CountCampaigns(ctx, campaigns.a, campaigns.b) }},
		{"economics", economics, func() (int64, error) { return s.CountEconomics(ctx, economics.a) }},
	}
	for _, c := range checks {
		want := int64(len(c.keys.a))
		if want == 0 {
			continue
		}
		got, err := c.count()
		if err != nil {
			return err
		}
		if got != want {
			return perr.DBf("bank: %s holds %d of %d published rows", c.table, got, want)
		}
	}
	return nil
}

// keySet collects distinct keys of up to two bigint columns, in first seen order
type keySet struct {
	seen map[[2]int64]struct{}
	a, b []int64
}

func (k *keySet) add(a, b int64) {
	if k.seen == nil {
		k.seen = map[[2]int64]struct{}{}
	}
	key := [2]int64{a, b}
	if _, ok := k.seen[key]; ok {
		return
	}
	k.seen[key] = struct{}{}
	k.a = append(k.a, a)
	k.b = append(k.b, b)
}
