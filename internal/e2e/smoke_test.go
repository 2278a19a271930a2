package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeStateFixture(home))

	_, stderr, err := runLG(t, binaryPath, home,
		"ledger", "set-balance",
		"--account", "alice",
		"--amount", "10000",
		"--as", "root",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runLG(t, binaryPath, home,
		"transfer",
		"--from", "alice",
		"--to", "bob",
		"--amount", "600",
		"--at", "2026-02-14T12:00:00Z",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "transferred 600 from alice to bob")

	stdout, stderr, err = runLG(t, binaryPath, home, "status", "--at", "2026-02-14T12:00:00Z")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "alice")
	assert.Contains(t, stdout, "balance: 9400")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "lg-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/lg")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build lg binary: %s", string(output))
	return binaryPath
}

func runLG(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "LEDGER_GUARD_CONFIG_DIR=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeStateFixture(home string) error {
	configDir := filepath.Join(home, ".ledger-guard")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	state := `version = 1
guards = ["ratelimit"]

[default_policy]
window_seconds = 86400
limit = 1000
`

	return os.WriteFile(filepath.Join(configDir, "state.toml"), []byte(state), 0o600)
}
