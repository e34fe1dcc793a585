package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/localhy/credit-ledger/internal/infrastructure/bootstrap"
)

// ErrInconsistentLedger is returned by audit when the stored balance drifted from the ledger
var ErrInconsistentLedger = errors.New("stored balance does not match the ledger")

func newBalanceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance USER_ID",
		Short: "Show a user's cash and free credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				balance, err := app.Credits.GetBalance(ctx, args[0])
				if err != nil {
					return err
				}

				resp := dto.NewBalanceResponse(args[0], balance)
				if opts.asJSON {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "user=%s cash=%d free=%d total=%d\n",
					resp.UserID, resp.CashCredits, resp.FreeCredits, resp.Total)
				return err
			})
		},
	}
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history USER_ID",
		Short: "List a user's newest ledger entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.Credits.History(ctx, args[0], limit)
				if err != nil {
					return err
				}

				if opts.asJSON {
					return printJSON(cmd.OutOrStdout(), dto.NewLedgerResponse(args[0], entries))
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "CREATED\tREASON\tCASH\tFREE\tCASH AFTER\tFREE AFTER\tKEY")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%+d\t%+d\t%d\t%d\t%s\n",
						e.CreatedAt.UTC().Format(time.RFC3339), e.Reason,
						e.CashDelta, e.FreeDelta, e.CashAfter, e.FreeAfter, entryKey(e))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}

func entryKey(e *entity.LedgerEntry) string {
	switch {
	case e.ExternalPaymentID != nil:
		return *e.ExternalPaymentID
	case e.IdempotencyKey != nil:
		return *e.IdempotencyKey
	}
	return "-"
}

func newAdjustCommand(opts *rootOptions) *cobra.Command {
	var (
		reason   string
		pool     string
		key      string
		note     string
		operator string
	)

	cmd := &cobra.Command{
		Use:   "adjust USER_ID DELTA",
		Short: "Grant or remove credits as an operator",
		Long: `Applies a signed delta to a user's balance. The idempotency key shares
its namespace with adjustments made through the admin API, so rerunning the
same command never applies it twice.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || delta == 0 {
				return fmt.Errorf("DELTA must be a non-zero integer, got %q", args[1])
			}
			parsedReason, err := entity.ParseReason(reason)
			if err != nil {
				return err
			}
			if key == "" {
				return errors.New("--key is required")
			}
			if operator == "" {
				operator = os.Getenv("USER")
			}

			return opts.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				result, err := app.Credits.ApplyDelta(ctx, entity.MutationRequest{
					UserID:         args[0],
					Delta:          delta,
					Reason:         parsedReason,
					Pool:           entity.CreditPool(pool),
					IdempotencyKey: handler.AdminKeyPrefix + key,
					Reference:      "operator:" + operator,
					Note:           note,
				})
				if err != nil {
					return err
				}

				app.Logger.Info("Operator adjusted credits", map[string]any{
					"operator":  operator,
					"user_id":   args[0],
					"delta":     delta,
					"reason":    reason,
					"duplicate": result.Duplicate,
				})

				resp := dto.AdjustResponse{
					UserID:      args[0],
					CashCredits: result.Balance.CashCredits,
					FreeCredits: result.Balance.FreeCredits,
					Duplicate:   result.Duplicate,
				}
				if result.Entry != nil {
					resp.EntryID = result.Entry.ID.String()
				}
				if opts.asJSON {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "user=%s cash=%d free=%d duplicate=%t\n",
					resp.UserID, resp.CashCredits, resp.FreeCredits, resp.Duplicate)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&reason, "reason", string(entity.ReasonAdminAdjustment), "Ledger reason")
	cmd.Flags().StringVar(&pool, "pool", "", "Pool to credit: cash or free (defaults to the reason's pool)")
	cmd.Flags().StringVar(&key, "key", "", "Idempotency key for this adjustment")
	cmd.Flags().StringVar(&note, "note", "", "Free text stored on the ledger entry")
	cmd.Flags().StringVar(&operator, "operator", "", "Operator name recorded as reference (defaults to $USER)")
	return cmd
}

func newAuditCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "audit USER_ID",
		Short: "Compare the stored balance with the ledger totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				report, err := app.Credits.Audit(ctx, args[0])
				if err != nil {
					return err
				}

				if opts.asJSON {
					err = printJSON(cmd.OutOrStdout(), report)
				} else {
					_, err = fmt.Fprintf(cmd.OutOrStdout(),
						"user=%s entries=%d stored=%d/%d ledger=%d/%d consistent=%t\n",
						report.UserID, report.Entries,
						report.Stored.CashCredits, report.Stored.FreeCredits,
						report.Ledger.CashCredits, report.Ledger.FreeCredits,
						report.Consistent)
				}
				if err != nil {
					return err
				}

				if !report.Consistent {
					return fmt.Errorf("%w for user %s", ErrInconsistentLedger, report.UserID)
				}
				return nil
			})
		},
	}
}
