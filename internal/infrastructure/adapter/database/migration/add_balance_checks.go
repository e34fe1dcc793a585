package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
)

// AddBalanceChecks adds the non-negative CHECK constraints to credit_accounts
type AddBalanceChecks struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAddBalanceChecks creates a new migration instance
func NewAddBalanceChecks(db *gorm.DB, logger coreport.Logger) *AddBalanceChecks {
	return &AddBalanceChecks{
		db:     db,
		logger: logger,
	}
}

var balanceChecks = map[string]string{
	"chk_credit_accounts_cash_non_negative": "cash_credits >= 0",
	"chk_credit_accounts_free_non_negative": "free_credits >= 0",
}

// Run executes the migration
func (m *AddBalanceChecks) Run(ctx context.Context) error {
	m.logger.Info("Adding balance check constraints to credit_accounts", nil)

	existing, err := m.existingConstraints(ctx)
	if err != nil {
		return err
	}

	for name, expr := range balanceChecks {
		if existing[name] {
			continue
		}
		if err := m.db.WithContext(ctx).Exec(
			"ALTER TABLE credit_accounts ADD CONSTRAINT " + name + " CHECK (" + expr + ")",
		).Error; err != nil {
			m.logger.Error("Failed to add check constraint", map[string]any{
				"constraint": name,
				"error":      err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Balance check constraints are in place", nil)
	return nil
}

func (m *AddBalanceChecks) existingConstraints(ctx context.Context) (map[string]bool, error) {
	var names []string
	err := m.db.WithContext(ctx).Raw(`
		SELECT constraint_name
		FROM information_schema.table_constraints
		WHERE table_name = 'credit_accounts' AND constraint_type = 'CHECK'
	`).Scan(&names).Error
	if err != nil {
		m.logger.Error("Failed to read existing constraints", map[string]any{"error": err.Error()})
		return nil, err
	}

	existing := make(map[string]bool, len(names))
	for _, name := range names {
		existing[name] = true
	}
	return existing, nil
}
