package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/emissions-cli/internal/geo"
	"github.com/sells-group/emissions-cli/internal/store"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"run", "clean", "classify", "runs"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "emissions-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRunsCommand_Flags(t *testing.T) {
	flag := runsCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "runs command should have --limit flag")
	assert.Equal(t, "50", flag.DefValue)
}

func TestFormatClassifications(t *testing.T) {
	var buf bytes.Buffer
	formatClassifications(&buf, geo.New(), []string{"Kosovo", "France", "Atlantis"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "CONTINENT")
	assert.Regexp(t, `^Kosovo\s+Europe\s+override$`, lines[2])
	assert.Regexp(t, `^France\s+Europe\s+iso$`, lines[3])
	assert.Regexp(t, `^Atlantis\s+Other\s+none$`, lines[4])
}

func TestFormatRunsList(t *testing.T) {
	var buf bytes.Buffer
	formatRunsList(&buf, []store.RunSummary{{
		ID:        "0f8fad5b-d9cb-469f-a165-70867728950e",
		Source:    "data/owid-co2-data.csv",
		RowCount:  48058,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}})

	out := buf.String()
	assert.Contains(t, out, "0f8fad5b ")
	assert.NotContains(t, out, "469f")
	assert.Contains(t, out, "48058")
	assert.Contains(t, out, "2024-03-01T12:00:00Z")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc", truncateID("abc"))
	assert.Equal(t, "12345678", truncateID("123456789"))
}

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck

	input := filepath.Join(dir, "raw.csv")
	require.NoError(t, os.WriteFile(input, []byte("country,year,co2\nFrance,2020,1\nFrance,2020,1\n"), 0o644))
	t.Setenv("EMISSIONS_INPUT_PATH", input)
	t.Setenv("EMISSIONS_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"clean"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "data", "cleaned_co2_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "country,year,co2\nFrance,2020,1\n", string(data))
}

func TestClassifyCommand_RequiresArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"classify"})
	err := rootCmd.Execute()
	require.Error(t, err)
}
