package report

import (
	"io"
)

// ShowHelp prints usage information for the report tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `SIH Outcomes Report
===================

Prints the dashboard rollups of an outcomes CSV as terminal tables.

Usage:
  sih-report [options]

Options:
  -data string
        Dashboard CSV (default from SIHDASH_DATA_PATH or the config file)
  -years string
        Comma separated edition years to keep (default all)
  -states string
        Comma separated institute states to keep (default all)
  -top int
        Rows per ranked table (default 10)
  -export string
        Directory for institute, problem statement and team CSVs
  -no-color
        Disable colored headings
  -help
        Show this help message

Examples:
  # Report on the configured dataset
  sih-report

  # Only the 2025 edition, top 20 rows, with CSV exports
  sih-report -years 2025 -top 20 -export out/
`)
}
