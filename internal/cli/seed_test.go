package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/testutil/testcatalog"
)

// seedResponse is the JSON envelope of the seed command.
type seedResponse struct {
	Status string            `json:"status"`
	Data   []model.DailySeed `json:"data"`
}

func decodeSeeds(t *testing.T, out string) []model.DailySeed {
	t.Helper()
	var resp seedResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestSeedCommandText(t *testing.T) {
	stdout, _, err := runCLI(t, "seed", "2025-10-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2025-10-15")
	assert.Contains(t, stdout, "city-nights")
	assert.Contains(t, stdout, "7ba06ebcb0c0d5921d077c8c61692e7cca1b559f285de7e69ba3f9685afb2eaf")
}

func TestSeedCommandDaysJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "seed", "2025-10-15", "--days", "3", "--format", "json")
	require.NoError(t, err)

	seeds := decodeSeeds(t, stdout)
	require.Len(t, seeds, 3)
	assert.Equal(t, "2025-10-15", seeds[0].Date)
	assert.Equal(t, "city-nights", seeds[0].Theme)
	assert.Equal(t, "2025-10-16", seeds[1].Date)
	assert.Equal(t, "50c163f89a75e90e02e83076d4e9b00c853e6905a2e1748a4126f31194f51351", seeds[1].SeedHex)
	assert.Equal(t, "2025-10-17", seeds[2].Date)
	assert.Equal(t, "summit", seeds[2].Theme)
	for _, s := range seeds {
		assert.Equal(t, "2025.10.1", s.PoolsVersion)
	}
}

func TestSeedCommandDefaultsToToday(t *testing.T) {
	stdout, _, err := runCLI(t, "seed", "--format", "json")
	require.NoError(t, err)

	seeds := decodeSeeds(t, stdout)
	require.Len(t, seeds, 1)
	assert.Equal(t, today(), seeds[0].Date)
}

func TestSeedCommandInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad date", args: []string{"seed", "2025-02-30"}},
		{name: "zero days", args: []string{"seed", "2025-10-15", "--days", "0"}},
		{name: "too many days", args: []string{"seed", "2025-01-01", "--days", "400"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout, "VALIDATION")
		})
	}
}

func TestSeedCommandSQLiteCacheKeepsFirstWrite(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "seeds.db")

	first, _, err := runCLI(t, "seed", "2025-10-15", "--cache", cachePath, "--format", "json")
	require.NoError(t, err)
	second, _, err := runCLI(t, "seed", "2025-10-15", "--cache", cachePath, "--format", "json")
	require.NoError(t, err)

	a, b := decodeSeeds(t, first), decodeSeeds(t, second)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].SeedHex, b[0].SeedHex)
	assert.True(t, a[0].CreatedAt.Equal(b[0].CreatedAt), "cached seed keeps its creation time")
}

func TestSeedCommandCachedListsStoredSeeds(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "seeds.db")

	derived, _, err := runCLI(t, "seed", "2025-10-15", "--days", "2", "--cache", cachePath, "--format", "json")
	require.NoError(t, err)
	listed, _, err := runCLI(t, "seed", "2025-10-14", "--days", "5", "--cached", "--cache", cachePath, "--format", "json")
	require.NoError(t, err)

	want, got := decodeSeeds(t, derived), decodeSeeds(t, listed)
	require.Len(t, got, 2, "only requested dates are stored")
	for i := range want {
		assert.Equal(t, want[i].Date, got[i].Date)
		assert.True(t, want[i].SameDerivation(got[i]))
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
	}

	text, _, err := runCLI(t, "seed", "2025-10-14", "--days", "5", "--cached", "--cache", cachePath)
	require.NoError(t, err)
	assert.Contains(t, text, "2025-10-16  city-nights")
}

func TestSeedCommandCachedIsScopedToSecret(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "seeds.db")
	_, _, err := runCLI(t, "seed", "2025-10-15", "--cache", cachePath)
	require.NoError(t, err)

	setCLIEnv(t)
	t.Setenv("WORDSEED_SECRET", "ff"+testcatalog.ZeroSecret[2:])
	stdout, _, err := executeCLI(testcatalog.DataPath("pools.json"), testcatalog.DataPath("lexicon.json"),
		"seed", "2025-10-15", "--cached", "--cache", cachePath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No cached seeds in range.")
}

func TestSeedCommandCachedNeedsSQLite(t *testing.T) {
	stdout, _, err := runCLI(t, "seed", "2025-10-15", "--cached")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "CONFIGURATION")
}
