package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/sihdash/internal/adapters/ingest"
	"github.com/okian/sihdash/pkg/logger"
)

const (
	defaultYear        = 2025
	outFilePermission  = 0o644
	defaultShortlisted = "shortlisted_*.csv"
)

func main() {
	var (
		psFile      = flag.String("ps", "", "Problem statement listing CSV")
		shortlisted = flag.String("shortlisted", defaultShortlisted, "Glob of shortlisted team batch CSVs")
		results     = flag.String("results", "", "Grand finale results CSV (optional)")
		year        = flag.Int("year", defaultYear, "Edition year written to every row")
		outFile     = flag.String("out", "", "Output CSV (default stdout)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Get().Named("merge")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *psFile == "" {
		log.Error(ctx, "missing -ps")
		flag.Usage()
		os.Exit(2)
	}

	out := os.Stdout
	if *outFile != "" {
		f, err := os.OpenFile(*outFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outFilePermission)
		if err != nil {
			log.Error(ctx, "failed to create output", logger.Error(err))
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	w := bufio.NewWriter(out)

	in := ingest.Inputs{
		ProblemStatements: *psFile,
		Shortlisted:       *shortlisted,
		Results:           *results,
		Year:              *year,
	}
	if _, err := ingest.Run(ctx, in, w, log); err != nil {
		log.Error(ctx, "merge failed", logger.Error(err))
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		log.Error(ctx, "failed to write output", logger.Error(err))
		os.Exit(1)
	}
}
