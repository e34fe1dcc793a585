package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/localhy/credit-ledger/internal/infrastructure/bootstrap"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if app.Database == nil {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "store has no schema; nothing to migrate")
					return err
				}
				if err := app.Migrate(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return err
			})
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Grant the configured development users their signup bonus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if app.Config.IsProduction() {
					return errors.New("seeding is disabled in production")
				}
				if err := app.Seed(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users\n", len(app.Config.Seed.Users))
				return err
			})
		},
	}
}

func newTokenCommand(opts *rootOptions) *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token USER_ID",
		Short: "Issue a bearer token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" && role != middleware.RoleAdmin {
				return fmt.Errorf("unknown role %q", role)
			}

			return opts.withApp(cmd, func(_ context.Context, app *bootstrap.App) error {
				if app.Config.IsProduction() {
					return errors.New("tokens are issued by the identity service in production")
				}
				token, err := app.Authenticator().Issue(args[0], role, ttl)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Role claim, e.g. admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
