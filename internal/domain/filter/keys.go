package filter

import (
	"fmt"
	"strconv"

	"github.com/okian/sihdash/internal/domain/model"
)

// Key names one filter control.
type Key string

// Filter keys. Multi-select keys are listed in pipeline order.
const (
	Year           Key = "year"
	Category       Key = "category"
	Theme          Key = "theme"
	Organization   Key = "organization"
	Department     Key = "department"
	Status         Key = "status"
	InstituteState Key = "state"
	City           Key = "city"
	TitleQuery     Key = "ps_title_query"
	InstituteQuery Key = "institute_name_query"
)

type stage struct {
	key   Key
	value func(*model.Record) string
}

// stages is the pipeline: core, organization, outcome, geography.
var stages = []stage{ //nolint:gochecknoglobals // fixed pipeline
	{Year, func(r *model.Record) string { return strconv.Itoa(r.EditionYear) }},
	{Category, func(r *model.Record) string { return r.Category }},
	{Theme, func(r *model.Record) string { return r.Theme }},
	{Organization, func(r *model.Record) string { return r.Organization }},
	{Department, func(r *model.Record) string { return r.Department }},
	{Status, func(r *model.Record) string { return r.Status }},
	{InstituteState, func(r *model.Record) string { return r.InstituteState }},
	{City, func(r *model.Record) string { return r.InstituteCity }},
}

// queryColumns maps free-text keys to the column they search, in pipeline order.
var queryColumns = []struct { //nolint:gochecknoglobals // fixed pipeline
	key Key
	col string
}{
	{TitleQuery, model.ColTitle},
	{InstituteQuery, model.ColInstituteName},
}

// Keys returns every filter key in pipeline order.
func Keys() []Key {
	out := make([]Key, 0, len(stages)+len(queryColumns))
	for _, s := range stages {
		out = append(out, s.key)
	}
	for _, q := range queryColumns {
		out = append(out, q.key)
	}
	return out
}

// IsQuery reports whether k is a free-text key.
func (k Key) IsQuery() bool { return k == TitleQuery || k == InstituteQuery }

// Valid reports whether k is a known key.
func (k Key) Valid() bool {
	if k.IsQuery() {
		return true
	}
	for _, s := range stages {
		if s.key == k {
			return true
		}
	}
	return false
}

// ParseKey validates s as a filter key.
func ParseKey(s string) (Key, error) {
	k := Key(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	return k, nil
}
