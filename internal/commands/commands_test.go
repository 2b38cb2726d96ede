package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/backoffice/internal/core/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "ctl.db"))
	t.Setenv("RUN_MIGRATIONS", "false")
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	useSQLite(t)

	_, err := run(t, "migrate", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}

func TestVoucherNumberAndVerifyOnFreshDatabase(t *testing.T) {
	useSQLite(t)

	_, err := run(t, "migrate", "up")
	require.NoError(t, err)

	out, err := run(t, "voucher-number", "kk")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatVoucherNumber("KK", time.Now().Year(), 1), strings.TrimSpace(out))

	out, err = run(t, "verify-balances")
	require.NoError(t, err)
	assert.Contains(t, out, "all balances consistent")
}

func TestVoucherNumberRejectsUnknownPrefix(t *testing.T) {
	useSQLite(t)
	_, err := run(t, "migrate", "up")
	require.NoError(t, err)

	_, err = run(t, "voucher-number", "K-K!")
	assert.Error(t, err)
}

func TestReverseEntryRequiresReason(t *testing.T) {
	useSQLite(t)

	_, err := run(t, "reverse-entry", "some-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason")
}

func TestReverseEntryUnknownID(t *testing.T) {
	useSQLite(t)
	_, err := run(t, "migrate", "up")
	require.NoError(t, err)

	_, err = run(t, "reverse-entry", "missing", "--reason", "typo")
	assert.Error(t, err)
}
