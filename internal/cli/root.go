package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/localhy/credit-ledger/internal/infrastructure/bootstrap"
	"github.com/localhy/credit-ledger/internal/infrastructure/config"
)

// Opener wires the ledger for one command invocation. env is empty unless
// --env was given.
type Opener func(ctx context.Context, env string) (*bootstrap.App, error)

// DefaultOpener loads the configuration files and connects every configured adapter
func DefaultOpener(ctx context.Context, env string) (*bootstrap.App, error) {
	var (
		cfg *config.Config
		err error
	)
	if env == "" {
		cfg, err = config.LoadConfig()
	} else {
		cfg, err = config.LoadConfigFrom(env, config.ConfigPaths...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return bootstrap.New(ctx, cfg, logger.NewZapLogger(cfg.IsProduction(), cfg.Logger.Level))
}

type rootOptions struct {
	env    string
	asJSON bool
	open   Opener
}

// NewRootCommand builds the ledgerctl command tree
func NewRootCommand(open Opener) *cobra.Command {
	opts := &rootOptions{open: open}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate the Localhy credit ledger",
		Long: `ledgerctl inspects balances and ledger history, grants operator
adjustments and audits stored balances against the append-only ledger.
It talks to the same store as the API using the API's configuration.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.env, "env", "", "Configuration environment (defaults to LH_ENV)")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print results as JSON")

	root.AddCommand(
		newBalanceCommand(opts),
		newHistoryCommand(opts),
		newAdjustCommand(opts),
		newAuditCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newTokenCommand(opts),
	)
	return root
}

// withApp opens the ledger, runs fn and releases everything afterwards
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := o.open(ctx, o.env)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close(context.WithoutCancel(ctx)) }()

	return fn(ctx, app)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
