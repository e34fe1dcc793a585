package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/memory"
	timeadapter "github.com/localhy/credit-ledger/internal/infrastructure/adapter/time"
	"github.com/localhy/credit-ledger/internal/infrastructure/bootstrap"
	"github.com/localhy/credit-ledger/internal/infrastructure/config"
)

type harness struct {
	store *memory.Store
	tp    *timeadapter.ManualTimeProvider
	cfg   *config.Config
	envs  []string
}

func newHarness() *harness {
	tp := timeadapter.NewManualTimeProvider(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC))
	return &harness{
		store: memory.NewStore(tp, logger.NewNoopLogger()),
		tp:    tp,
		cfg: &config.Config{
			Environment: config.Test,
			Ledger:      config.LedgerConfig{Store: bootstrap.StoreMemory},
			Pricing:     config.PricingConfig{Actions: map[string]int64{"create_referral_job": 5}},
			Gate:        config.GateConfig{LockBackend: bootstrap.LocksMemory},
			Auth:        config.AuthConfig{JWTSecret: "cli-secret", Issuer: "localhy-test"},
			Seed:        config.SeedConfig{Users: []string{"dev-1", "dev-2"}, SignupBonus: 10},
		},
	}
}

func (h *harness) open(ctx context.Context, env string) (*bootstrap.App, error) {
	h.envs = append(h.envs, env)
	return bootstrap.New(ctx, h.cfg, logger.NewNoopLogger(),
		bootstrap.WithStore(h.store), bootstrap.WithTimeProvider(h.tp))
}

func (h *harness) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCommand(h.open)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAdjustAndBalance(t *testing.T) {
	h := newHarness()

	out, err := h.run("adjust", "user-1", "40", "--key", "grant-1", "--operator", "ops", "--pool", "cash")
	require.NoError(t, err)
	assert.Equal(t, "user=user-1 cash=40 free=0 duplicate=false\n", out)

	out, err = h.run("adjust", "user-1", "40", "--key", "grant-1", "--operator", "ops", "--pool", "cash")
	require.NoError(t, err)
	assert.Contains(t, out, "duplicate=true")

	out, err = h.run("balance", "user-1", "--json")
	require.NoError(t, err)
	var balance dto.BalanceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &balance))
	assert.Equal(t, dto.BalanceResponse{UserID: "user-1", CashCredits: 40, Total: 40}, balance)

	out, err = h.run("history", "user-1")
	require.NoError(t, err)
	assert.Contains(t, out, "admin_adjustment")
	assert.Contains(t, out, "admin:grant-1")
}

func TestAdjust_RejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "Zero delta", args: []string{"adjust", "user-1", "0", "--key", "k"}, want: "non-zero integer"},
		{name: "Not a number", args: []string{"adjust", "user-1", "ten", "--key", "k"}, want: "non-zero integer"},
		{name: "Missing key", args: []string{"adjust", "user-1", "5"}, want: "--key is required"},
		{name: "Unknown reason", args: []string{"adjust", "user-1", "5", "--key", "k", "--reason", "gift"}, want: "gift"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()

			_, err := h.run(tc.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Empty(t, h.envs, "the ledger must not be opened for invalid input")
		})
	}
}

func TestAudit(t *testing.T) {
	h := newHarness()
	_, err := h.run("adjust", "user-1", "15", "--key", "grant-1")
	require.NoError(t, err)

	out, err := h.run("audit", "user-1", "--json")
	require.NoError(t, err)
	var report struct {
		Entries    int64 `json:"entries"`
		Consistent bool  `json:"consistent"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, int64(1), report.Entries)
	assert.True(t, report.Consistent)

	_, err = h.run("audit", "user-2")
	assert.NoError(t, err, "an account without history is consistent")
}

func TestSeedMigrateAndToken(t *testing.T) {
	h := newHarness()

	out, err := h.run("seed", "--env", "test")
	require.NoError(t, err)
	assert.Equal(t, "seeded 2 users\n", out)
	assert.Equal(t, []string{"test"}, h.envs)

	out, err = h.run("balance", "dev-2")
	require.NoError(t, err)
	assert.Equal(t, "user=dev-2 cash=0 free=10 total=10\n", out)

	out, err = h.run("migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")

	out, err = h.run("token", "ops-1", "--role", "admin")
	require.NoError(t, err)
	auth := middleware.NewAuthenticator("cli-secret", "localhy-test", h.tp, logger.NewNoopLogger())
	claims, err := auth.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.Equal(t, middleware.RoleAdmin, claims.Role)

	_, err = h.run("token", "ops-1", "--role", "root")
	assert.ErrorContains(t, err, "unknown role")
}

func TestProductionGuards(t *testing.T) {
	h := newHarness()
	h.cfg.Environment = config.Production

	_, err := h.run("seed")
	assert.ErrorContains(t, err, "disabled in production")

	_, err = h.run("token", "ops-1")
	assert.ErrorContains(t, err, "identity service")
}
