package model

// Table is a loaded dataset. It is never mutated after load.
type Table struct {
	// Source is the resolved path the table was read from.
	Source string
	// Columns lists header columns in file order followed by derived columns.
	Columns []string
	Records []Record

	colSet map[string]struct{}
}

// NewTable builds a table over records.
func NewTable(source string, columns []string, records []Record) *Table {
	t := &Table{Source: source, Columns: columns, Records: records, colSet: make(map[string]struct{}, len(columns))}
	for _, c := range columns {
		t.colSet[c] = struct{}{}
	}
	return t
}

// HasColumn reports whether col was present in the header or derived.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.colSet[col]
	return ok
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// All returns a view over every record.
func (t *Table) All() View {
	idx := make([]int, len(t.Records))
	for i := range idx {
		idx[i] = i
	}
	return View{table: t, idx: idx}
}

// View is an ordered subset of a table's records, addressed by index.
type View struct {
	table *Table
	idx   []int
}

// Table returns the table backing the view.
func (v View) Table() *Table { return v.table }

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.idx) }

// At returns the i-th record of the view.
func (v View) At(i int) *Record { return &v.table.Records[v.idx[i]] }

// Filter keeps the records that match, preserving order.
func (v View) Filter(keep func(*Record) bool) View {
	out := make([]int, 0, len(v.idx))
	for _, i := range v.idx {
		if keep(&v.table.Records[i]) {
			out = append(out, i)
		}
	}
	return View{table: v.table, idx: out}
}

// Reorder returns a view with records in the order given by perm,
// a permutation of positions within v.
func (v View) Reorder(perm []int) View {
	out := make([]int, len(perm))
	for i, p := range perm {
		out[i] = v.idx[p]
	}
	return View{table: v.table, idx: out}
}

// Each calls fn for every record in order.
func (v View) Each(fn func(*Record)) {
	for _, i := range v.idx {
		fn(&v.table.Records[i])
	}
}
