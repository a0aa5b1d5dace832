package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInventory(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeInventory(t, `
targets:
  - address: 10.0.0.5
    username: admin
    password: x
`)
	inv, err := Load(path)
	require.NoError(t, err)
	require.Len(t, inv.Targets, 1)

	tgt := inv.Targets[0]
	assert.Equal(t, "default", tgt.Site)
	assert.Equal(t, FamilyILO, tgt.Family)
}

func TestLoadDuplicateFirstWins(t *testing.T) {
	path := writeInventory(t, `
targets:
  - address: 10.0.0.5
    site: lab
  - address: 10.0.0.5
    site: other
  - address: ""
`)
	inv, err := Load(path)
	require.NoError(t, err)
	require.Len(t, inv.Targets, 1)
	assert.Equal(t, "lab", inv.Targets[0].Site)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeInventory(t, "targets: [not: valid: yaml"))
	assert.Error(t, err)
}

func TestSecret(t *testing.T) {
	tgt := Target{Password: "inline"}
	assert.Equal(t, "inline", tgt.Secret())

	tgt.PasswordEnv = "BMC_TEST_SECRET"
	assert.Equal(t, "inline", tgt.Secret(), "unset env falls back to inline")

	t.Setenv("BMC_TEST_SECRET", "from-env")
	assert.Equal(t, "from-env", tgt.Secret())
}

func TestFileSourceReloads(t *testing.T) {
	path := writeInventory(t, "targets:\n  - address: 10.0.0.1\n")
	src := &FileSource{Path: path}

	targets, err := src.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 1)

	require.NoError(t, os.WriteFile(path, []byte("targets:\n  - address: 10.0.0.1\n  - address: 10.0.0.2\n"), 0o600))
	targets, err = src.Targets()
	require.NoError(t, err)
	assert.Len(t, targets, 2)
}
