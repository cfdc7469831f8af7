package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"prodanalytics/internal/core/nps"
	"prodanalytics/internal/modkit"
	"prodanalytics/internal/modkit/module"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/nps/domain"
	"prodanalytics/internal/services/nps/ingest"
	npsmod "prodanalytics/internal/services/nps/module"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newNPSCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nps",
		Short: "Check, combine and score survey response files",
	}
	cmd.AddCommand(newCombineCmd(a), newScoreCmd(a), newCheckCmd(a))
	return cmd
}

// sourceFlags are the inputs shared by combine and score
type sourceFlags struct {
	manifest string
	opts     npsmod.Options
}

func (f *sourceFlags) bind(cmd *cobra.Command, def npsmod.Options) {
	f.opts = def
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "yaml manifest listing sources")
	cmd.Flags().IntVar(&f.opts.Workers, "workers", def.Workers, "sources checked and loaded concurrently")
	cmd.Flags().StringVar(&f.opts.DateLayout, "date-layout", def.DateLayout, "Go time layout of response_date")
}

// sources returns the manifest entries followed by the location=channel args
func (f *sourceFlags) sources(args []string) ([]domain.Source, error) {
	var out []domain.Source
	if f.manifest != "" {
		fh, err := os.Open(f.manifest)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open manifest %s", f.manifest)
		}
		defer func() { _ = fh.Close() }()
		ms, err := ingest.ReadManifest(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, ms...)
	}
	if len(args) > 0 {
		ps, err := ingest.ManifestFromPairs(args)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

// combine mounts the nps module and combines the selected sources
func (a *app) combine(ctx context.Context, f *sourceFlags, args []string) (modkit.Module, domain.Result, error) {
	srcs, err := f.sources(args)
	if err != nil {
		return nil, domain.Result{}, err
	}
	m, err := mount(npsmod.Build, a.deps(), modkit.WithSettings(f.opts))
	if err != nil {
		return nil, domain.Result{}, err
	}
	res, err := module.MustPortsOf[domain.CombinerPort](m).Combine(ctx, srcs)
	if err != nil {
		return nil, domain.Result{}, err
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintln(a.out, d.Message())
	}
	fmt.Fprintf(a.out, "combined %d records from %d of %d sources\n",
		res.Records.Len(), len(srcs)-len(res.Diagnostics), len(srcs))
	return m, res, nil
}

func newCombineCmd(a *app) *cobra.Command {
	var (
		f   sourceFlags
		out string
	)
	cmd := &cobra.Command{
		Use:     "combine [location=channel ...]",
		Short:   "Combine valid survey files into one record set",
		Example: "prodanalytics nps combine email.csv=email web.csv=web --out combined.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, res, err := a.combine(cmd.Context(), &f, args)
			if err != nil {
				return err
			}
			if out == "" {
				return nil
			}
			exp := module.MustPortsOf[domain.ExporterPort](m)
			if out == "-" {
				return exp.Export(a.out, res.Records)
			}
			return writeFile(out, func(w io.Writer) error { return exp.Export(w, res.Records) })
		},
	}
	f.bind(cmd, npsmod.FromConfig(a.cfg))
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the combined records as csv (- for stdout)")
	return cmd
}

func newScoreCmd(a *app) *cobra.Command {
	var (
		f         sourceFlags
		byChannel bool
	)
	cmd := &cobra.Command{
		Use:   "score [location=channel ...]",
		Short: "Print the NPS of the combined records",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, res, err := a.combine(cmd.Context(), &f, args)
			if err != nil {
				return err
			}
			sc := module.MustPortsOf[domain.ScorerPort](m)
			overall, err := sc.OverallScore(res.Records)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "NPS %.2f\n", overall)
			if !byChannel {
				return nil
			}
			scores, err := sc.ScoreByChannel(res.Records)
			if err != nil {
				return err
			}
			return renderChannels(a.out, scores)
		},
	}
	f.bind(cmd, npsmod.FromConfig(a.cfg))
	cmd.Flags().BoolVar(&byChannel, "by-channel", false, "also print a per channel table")
	return cmd
}

func renderChannels(w io.Writer, scores []nps.ChannelScore) error {
	t := tablewriter.NewWriter(w)
	t.Header("channel", "score", "promoters", "passives", "detractors", "invalid", "total")
	for _, s := range scores {
		row := []string{
			s.Channel,
			strconv.FormatFloat(s.Score, 'f', 2, 64),
			strconv.Itoa(s.Counts[nps.Promoter]),
			strconv.Itoa(s.Counts[nps.Passive]),
			strconv.Itoa(s.Counts[nps.Detractor]),
			strconv.Itoa(s.Counts[nps.Invalid]),
			strconv.Itoa(s.Total),
		}
		if err := t.Append(row); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "render channel table")
		}
	}
	if err := t.Render(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "render channel table")
	}
	return nil
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <location>...",
		Short: "Report whether survey files have the expected header",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var op domain.Opener = ingest.OSOpener{}
			if a.opener != nil {
				op = a.opener
			}
			bad := 0
			for _, loc := range args {
				ok, err := ingest.Check(cmd.Context(), op, loc)
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintf(a.out, "%s: ok\n", loc)
					continue
				}
				bad++
				fmt.Fprintf(a.out, "%s: header is not %s\n", loc, ingest.RequiredHeader)
			}
			if bad > 0 {
				return perr.Validationf("%d of %d files have an invalid header", bad, len(args))
			}
			return nil
		},
	}
}

// writeFile creates path and closes it on every path, reporting the first failure
func writeFile(path string, fn func(io.Writer) error) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return perr.Resourcef(err, "create %s", path)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = perr.Resourcef(cerr, "close %s", path)
		}
	}()
	return fn(fh)
}
