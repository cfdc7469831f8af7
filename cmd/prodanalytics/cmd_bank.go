package main

import (
	"context"
	"fmt"
	"os"

	"prodanalytics/internal/modkit"
	"prodanalytics/internal/modkit/module"
	"prodanalytics/internal/modkit/repokit"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/platform/logger"
	"prodanalytics/internal/platform/store"
	"prodanalytics/internal/platform/validate"
	bankdom "prodanalytics/internal/services/bank/domain"
	bankmod "prodanalytics/internal/services/bank/module"
	banksvc "prodanalytics/internal/services/bank/service"

	"github.com/spf13/cobra"
)

func newBankCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Bank marketing dataset tooling",
	}
	cmd.AddCommand(newSplitCmd(a))
	return cmd
}

func newSplitCmd(a *app) *cobra.Command {
	var (
		in     string
		outDir string
		o      = bankmod.FromConfig(a.cfg)
	)
	cmd := &cobra.Command{
		Use:     "split",
		Short:   "Split the flat marketing file into client, campaign and economics tables",
		Example: "prodanalytics bank split --in bank_marketing.csv --out-dir datasets --publish pg",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := validate.Struct(o); err != nil {
				return perr.Rewrap(err, "bank options")
			}

			deps := a.deps()
			if o.Publish != bankmod.PublishNone {
				st, err := a.openPublishStore(ctx, o.Publish)
				if err != nil {
					return err
				}
				defer func() {
					if err := st.Close(context.Background()); err != nil {
						logger.Named("cli").Error().Err(err).Msg("failed to close store")
					}
				}()
				deps.PG, deps.CH = st.PG, st.CH
			}

			m, err := mount(bankmod.Build, deps, modkit.WithSettings(o))
			if err != nil {
				return err
			}

			fh, err := os.Open(in)
			if err != nil {
				return perr.Resourcef(err, "open %s", in)
			}
			defer func() { _ = fh.Close() }()

			t, err := module.MustPortsOf[bankdom.RunnerPort](m).Run(ctx, fh, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "split %d rows into %s, %s, %s under %s\n",
				t.Len(), banksvc.ClientFile, banksvc.CampaignFile, banksvc.EconomicsFile, outDir)
			if o.Publish != bankmod.PublishNone {
				fmt.Fprintf(a.out, "published to %s\n", o.Publish)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "bank_marketing.csv", "flat marketing csv")
	cmd.Flags().StringVar(&outDir, "out-dir", "datasets", "directory the three tables are written to")
	cmd.Flags().StringVar(&o.Publish, "publish", o.Publish, "also load the tables into none|pg|ch")
	cmd.Flags().IntVar(&o.Year, "year", o.Year, "year stamped on last_contact_date")
	cmd.Flags().IntVar(&o.CampaignID, "campaign-id", o.CampaignID, "campaign_id stamped on every campaign row")
	return cmd
}

// openPublishStore opens only the backend target needs and waits for it to answer
func (a *app) openPublishStore(ctx context.Context, target string) (*store.Store, error) {
	cfg := store.FromConfig(a.cfg, "prodanalytics", "bank")
	cfg.PG.Enabled = target == bankmod.PublishPG
	cfg.CH.Enabled = target == bankmod.PublishCH

	st, err := a.openStore(ctx, cfg, store.WithLogger(*logger.Named("store")))
	if err != nil {
		return nil, err
	}

	var p repokit.Pinger
	if cfg.PG.Enabled {
		p, _ = st.PG.(repokit.Pinger)
	} else if st.CH != nil {
		p = st.CH
	}
	if err := repokit.Ready(ctx, target, p); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	return st, nil
}
