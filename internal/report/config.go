package report

import "github.com/okian/sihdash/pkg/logger"

// Config holds configuration for one report run.
type Config struct {
	DataPath  string        // dashboard CSV to read
	Years     []string      // edition years to keep; empty keeps all
	States    []string      // institute states to keep; empty keeps all
	Top       int           // rows per ranked table
	ExportDir string        // directory for rollup CSVs; empty skips the export
	NoColor   bool          // disable ANSI colors in headings
	Logger    logger.Logger // defaults to the global logger
}

// defaultTop is used when Config.Top is not positive.
const defaultTop = 10
