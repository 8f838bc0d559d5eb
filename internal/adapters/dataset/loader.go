// Package dataset reads the dashboard CSV into an immutable table, checks its
// schema, caches it by path and modification signature, and writes exports.
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/sihdash/internal/domain/model"
)

const utf8BOM = "\ufeff"

// Load reads and normalizes the CSV file at path.
func Load(ctx context.Context, path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()
	return Parse(ctx, bufio.NewReader(f), path)
}

// Parse normalizes CSV read from r. source names the input in errors.
func Parse(ctx context.Context, r io.Reader, source string) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return nil, &LoadError{Path: source, Err: fmt.Errorf("read header: %w", err)}
	}
	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, &LoadError{Path: source, Err: err}
	}

	var records []model.Record
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &LoadError{Path: source, Err: err}
			}
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: source, Err: err}
		}
		if len(row) > len(columns) {
			return nil, &LoadError{Path: source, Err: fmt.Errorf("line %d: %d fields, header has %d", line, len(row), len(columns))}
		}
		records = append(records, normalizeRow(columns, row))
	}

	// derived columns replace any copies carried over from an older export
	out := make([]string, 0, len(columns)+2)
	for _, c := range columns {
		if c != "" {
			out = append(out, c)
		}
	}
	if hasColumn(columns, model.ColTotalSubmission) {
		out = append(out, model.ColSubmissionsReceived, model.ColSubmissionsLimit)
	}
	return model.NewTable(source, out, records), nil
}

// normalizeHeader trims names and blanks out derived columns so they are skipped.
func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		if _, dup := seen[h]; dup && h != "" {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = struct{}{}
		if model.IsDerived(h) {
			h = ""
		}
		columns[i] = h
	}
	return columns, nil
}

func normalizeRow(columns, row []string) model.Record {
	var rec model.Record
	for i, col := range columns {
		if col == "" {
			continue
		}
		raw := ""
		if i < len(row) {
			raw = row[i]
		}
		v, null := cell(raw)

		switch col {
		case model.ColEditionYear:
			rec.EditionYear = parseYear(v, null)
		case model.ColPrizeMoney:
			rec.PrizeMoney = parsePrize(v, null)
		case model.ColMaxSubmission:
			rec.MaxSubmission = parseOptionalInt(v, null)
		default:
			if col == model.ColTotalSubmission {
				rec.SubmissionsReceived, rec.SubmissionsLimit = splitSubmission(v, null)
			}
			if null {
				if rec.Nulls == nil {
					rec.Nulls = make(map[string]bool)
				}
				rec.Nulls[col] = true
				v = model.Unknown
			}
			rec.SetText(col, v)
		}
	}
	return rec
}

func hasColumn(columns []string, col string) bool {
	for _, c := range columns {
		if c == col {
			return true
		}
	}
	return false
}
