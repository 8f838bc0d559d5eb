package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/sihdash/internal/config"
	"github.com/okian/sihdash/internal/report"
	"github.com/okian/sihdash/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Flags default to the dashboard configuration.
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	var (
		dataPath  = flag.String("data", cfg.DataPath, "Dashboard CSV")
		years     = flag.String("years", "", "Comma separated edition years to keep")
		states    = flag.String("states", "", "Comma separated institute states to keep")
		top       = flag.Int("top", cfg.TopN.Themes, "Rows per ranked table")
		exportDir = flag.String("export", cfg.ExportDir, "Directory for rollup CSVs")
		noColor   = flag.Bool("no-color", false, "Disable colored headings")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		report.ShowHelp(os.Stdout)
		return
	}

	rc := &report.Config{
		DataPath:  *dataPath,
		Years:     splitList(*years),
		States:    splitList(*states),
		Top:       *top,
		ExportDir: *exportDir,
		NoColor:   *noColor,
	}
	if err := report.Run(ctx, rc, os.Stdout); err != nil {
		os.Stderr.WriteString("Report failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
