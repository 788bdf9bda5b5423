package formatter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
)

// FormatForPath picks the output format from a file extension: .json and
// .yaml/.yml select those formats, anything else the human report.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "human"
	}
}

// WriteReportFile saves the report to path in the format its extension
// names. Human reports are written without colour codes.
func WriteReportFile(path string, r Report, opts Options) error {
	format := FormatForPath(path)

	var buf bytes.Buffer
	if format == "human" {
		prev := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = prev }()
	}
	if err := DisplayResults(&buf, r, format, opts); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "formatter: write report %s", path)
	}
	return nil
}
