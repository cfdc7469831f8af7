// Command prodanalytics combines and scores NPS survey files and splits the
// bank marketing dataset into normalized tables
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"prodanalytics/internal/core/version"
	"prodanalytics/internal/modkit"
	"prodanalytics/internal/modkit/module"
	"prodanalytics/internal/platform/config"
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/platform/logger"
	"prodanalytics/internal/platform/store"
	npsdom "prodanalytics/internal/services/nps/domain"

	"github.com/spf13/cobra"
)

func main() {
	logger.Init(logger.FromEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app is the state shared by every command
type app struct {
	cfg    config.Conf
	out    io.Writer
	errOut io.Writer

	// opener resolves survey locations, nil means the local filesystem
	opener npsdom.Opener

	// openStore is swapped by tests
	openStore func(ctx context.Context, cfg store.Config, opts ...store.Option) (*store.Store, error)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	a := &app{cfg: config.New(), out: out, errOut: errOut, openStore: store.Open}
	return a.execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		code := perr.CodeOf(err)
		logger.Named("cli").Debug().Err(err).Str("code", code.String()).Msg("command failed")
		fmt.Fprintf(a.errOut, "error: %v\n", err)
		return perr.ExitStatus(err)
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "prodanalytics",
		Short:         "Survey scoring and marketing dataset tooling",
		Version:       version.Info().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newNPSCmd(a), newBankCmd(a))
	return root
}

func (a *app) deps() modkit.Deps {
	return modkit.Deps{
		Log:    logger.Named("cli"),
		Cfg:    a.cfg,
		Opener: a.opener,
	}
}

// mount builds a module and registers its ports for the rest of the process
func mount(b modkit.Builder, deps modkit.Deps, opts ...modkit.Option) (modkit.Module, error) {
	m, err := b(deps, opts...)
	if err != nil {
		return nil, err
	}
	module.RegisterModule(m)
	return m, nil
}
