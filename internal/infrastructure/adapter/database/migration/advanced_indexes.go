package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes and triggers
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type ddlStep struct {
	name string
	sql  string
}

var advancedIndexes = []ddlStep{
	{
		// Idempotency of provider notifications
		name: "idx_ledger_entries_external_payment_id",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_entries_external_payment_id
			ON ledger_entries (external_payment_id)
			WHERE external_payment_id IS NOT NULL`,
	},
	{
		// Idempotency of caller keyed mutations
		name: "idx_ledger_entries_idempotency_key",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_entries_idempotency_key
			ON ledger_entries (idempotency_key)
			WHERE idempotency_key IS NOT NULL`,
	},
	{
		name: "idx_referral_jobs_charge_entry_id",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_referral_jobs_charge_entry_id
			ON referral_jobs (charge_entry_id)`,
	},
	{
		name: "idx_ledger_entries_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_ledger_entries_created_at_brin
			ON ledger_entries USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
	{
		name: "idx_notifications_unread",
		sql: `CREATE INDEX IF NOT EXISTS idx_notifications_unread
			ON notifications (user_id, created_at)
			WHERE read = false`,
	},
}

var appendOnlyTrigger = []ddlStep{
	{
		name: "ledger_entries_append_only",
		sql: `CREATE OR REPLACE FUNCTION ledger_entries_append_only() RETURNS trigger AS $$
			BEGIN
				RAISE EXCEPTION 'ledger_entries is append-only' USING ERRCODE = 'restrict_violation';
			END;
			$$ LANGUAGE plpgsql`,
	},
	{
		name: "drop trg_ledger_entries_append_only",
		sql:  `DROP TRIGGER IF EXISTS trg_ledger_entries_append_only ON ledger_entries`,
	},
	{
		name: "trg_ledger_entries_append_only",
		sql: `CREATE TRIGGER trg_ledger_entries_append_only
			BEFORE UPDATE OR DELETE ON ledger_entries
			FOR EACH ROW EXECUTE FUNCTION ledger_entries_append_only()`,
	},
}

// CreateAdvancedIndexes creates the partial unique indexes the ledger relies on
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)
	return m.apply(ctx, advancedIndexes)
}

// CreateAppendOnlyTrigger rejects UPDATE and DELETE on ledger entries
func (m *AdvancedIndexManager) CreateAppendOnlyTrigger(ctx context.Context) error {
	m.logger.Info("Installing ledger append-only trigger", nil)
	return m.apply(ctx, appendOnlyTrigger)
}

func (m *AdvancedIndexManager) apply(ctx context.Context, steps []ddlStep) error {
	for _, step := range steps {
		if err := m.db.WithContext(ctx).Exec(step.sql).Error; err != nil {
			m.logger.Error("Failed to apply DDL step", map[string]any{
				"step":  step.name,
				"error": err.Error(),
			})
			return err
		}
	}
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL storage tweaks; failures are only logged
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// credit_accounts rows are updated in place on every mutation
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE credit_accounts SET (fillfactor = 80)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for credit_accounts", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE ledger_entries ALTER COLUMN user_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for ledger_entries.user_id", map[string]any{
			"error": err.Error(),
		})
	}
}
