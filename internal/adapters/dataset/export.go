package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/okian/sihdash/internal/domain/model"
)

// WriteCSV writes a header row followed by rows.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteView writes the selected columns of every record in v.
// An empty column list writes all table columns.
func WriteView(w io.Writer, v model.View, columns []string) error {
	if len(columns) == 0 && v.Table() != nil {
		columns = v.Table().Columns
	}
	rows := make([][]string, 0, v.Len())
	v.Each(func(r *model.Record) {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = r.Cell(c)
		}
		rows = append(rows, row)
	})
	return WriteCSV(w, columns, rows)
}
