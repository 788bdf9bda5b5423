package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, "json", FormatForPath("report.JSON"))
	assert.Equal(t, "yaml", FormatForPath("out/report.yml"))
	assert.Equal(t, "yaml", FormatForPath("report.yaml"))
	assert.Equal(t, "human", FormatForPath("report.txt"))
	assert.Equal(t, "human", FormatForPath("report"))
}

func TestWriteReportFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReportFile(path, mediumReport(), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "pol-1", got.PolicyID)
	assert.Equal(t, 50, got.Result.RiskScore)
}

func TestWriteReportFile_HumanHasNoColour(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteReportFile(path, mediumReport(), Options{Guide: true}))
	assert.False(t, color.NoColor, "colour setting restored")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "50/100")
	assert.Contains(t, out, "REQUIRED DOCUMENTS")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteReportFile_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.txt")
	require.Error(t, WriteReportFile(path, mediumReport(), Options{}))
}
