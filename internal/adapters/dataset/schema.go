package dataset

import (
	"sort"

	"github.com/okian/sihdash/internal/domain/model"
)

// CheckSchema returns a *SchemaError naming every required column absent from t.
func CheckSchema(t *model.Table) error {
	var missing []string
	for _, col := range model.RequiredColumns() {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &SchemaError{Path: t.Source, Missing: missing}
}
