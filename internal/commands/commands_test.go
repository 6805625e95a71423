package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/auth"
	"github.com/smbc/backend/internal/infrastructure/config"
	"github.com/smbc/backend/internal/infrastructure/persistence"
)

const testSecret = "commands-test-secret-0123456789abcdef"

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[app]
timezone = "Asia/Manila"

[database]
driver = "sqlite"
path = %q
log_level = "silent"

[jwt]
secret = %q

[log]
level = "error"
`, filepath.Join(dir, "ventures.db"), testSecret)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	cfgPath := writeConfig(t)
	userID := "6f1c2d8e-7b1a-4c55-9d0e-0a1b2c3d4e5f"

	out, err := run(t, "--config", cfgPath, "token", "issue",
		"--user", userID, "--role", "Admin", "--department", "Corporate")
	require.NoError(t, err)

	token := strings.SplitN(out, "\n", 2)[0]
	claims, err := auth.NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "ventures-backend"}).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Corporate", claims.Department)
	assert.True(t, claims.IsAdmin())
}

func TestTokenIssueRejectsBadUser(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t), "token", "issue", "--user", "nope", "--department", "Catering")
	assert.Error(t, err)
}

func TestInvoicePeek(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := run(t, "--config", cfgPath, "invoice", "peek", "--date", "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "INV-20260210-0001\n", out)

	// peeking does not take the number
	out, err = run(t, "--config", cfgPath, "invoice", "peek", "--date", "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "INV-20260210-0001\n", out)

	// a recorded batch consumes it
	rt, err := openRuntime(context.Background(), cfgPath, true)
	require.NoError(t, err)
	day, err := shared.ParseDate("2026-02-10")
	require.NoError(t, err)
	n, err := persistence.NewGormInvoiceSequence(rt.db.DB).Next(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260210-0001", n.String())
	rt.Close()

	out, err = run(t, "--config", cfgPath, "invoice", "peek", "--date", "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "INV-20260210-0002\n", out)

	// the counter is per day
	out, err = run(t, "--config", cfgPath, "invoice", "peek", "--date", "2026-02-11")
	require.NoError(t, err)
	assert.Equal(t, "INV-20260211-0001\n", out)
}

func TestInvoicePeekRejectsBadDate(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t), "invoice", "peek", "--date", "10/02/2026")
	assert.Error(t, err)
}

func TestReportTrialBalanceXLSX(t *testing.T) {
	cfgPath := writeConfig(t)
	outDir := t.TempDir()

	out, err := run(t, "--config", cfgPath, "report", "trial-balance",
		"--venture", "carenderia", "--month", "2026-01", "--format", "xlsx", "--out", outDir)
	require.NoError(t, err)

	m := regexp.MustCompile(`wrote (\S+) \(\d+ bytes\)`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	data, err := os.ReadFile(m[1])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip archive")
}

func TestReportRejectsUnknownInputs(t *testing.T) {
	cfgPath := writeConfig(t)

	_, err := run(t, "--config", cfgPath, "report", "trial-balance", "--venture", "bakery", "--month", "2026-01")
	assert.ErrorContains(t, err, "unknown venture")

	_, err = run(t, "--config", cfgPath, "report", "trial-balance",
		"--venture", "catering", "--month", "2026-01", "--format", "csv")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "--config", cfgPath, "report", "trial-balance", "--venture", "catering")
	assert.Error(t, err)
}

func TestMigrateRefusesSQLite(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t), "migrate", "up")
	assert.ErrorContains(t, err, "PostgreSQL")
}
