package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "accounts", cfg.Dynamo.AccountsTable)
	assert.Equal(t, "deposits_transactions", cfg.Dynamo.TransactionsTable)
	assert.Equal(t, 60*time.Second, cfg.Vault.PollInterval)
	assert.Equal(t, 10, cfg.Options.ChunkSize)
	assert.Equal(t, "memory", cfg.EventBus.Driver)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "VAULT_INGRESS_BUCKET=ingress\nDYNAMO_FRAUD_TABLE=FraudTest\nRATE_LIMIT_WINDOW=2s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.unit"), []byte(content), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("VAULT_INGRESS_BUCKET")
		_ = os.Unsetenv("DYNAMO_FRAUD_TABLE")
		_ = os.Unsetenv("RATE_LIMIT_WINDOW")
	})

	cfg, err := Load("missing.env", ".env.unit")
	require.NoError(t, err)
	assert.Equal(t, "ingress", cfg.Vault.IngressBucket)
	assert.Equal(t, "FraudTest", cfg.Dynamo.FraudTable)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.Window)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "po****5432", maskValue("postgres://localhost:5432"))
}

func TestFindEnvTest_NotFound(t *testing.T) {
	_, err := FindEnvTest("definitely-not-here.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", ".env"), []byte("X=1\n"), 0o600))

	found, err := findUp(nested, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", ".env"), found)

	_, err = findUp(nested, ".env.missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
