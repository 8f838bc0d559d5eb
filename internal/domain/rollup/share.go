package rollup

import "github.com/okian/sihdash/internal/domain/model"

// ShareRow is one category's share of a state's teams.
type ShareRow struct {
	State    string  `json:"institute_state"`
	Category string  `json:"category"`
	Teams    int     `json:"teams"`
	Share    float64 `json:"share"`
}

// CategoryShare splits each of the topStates busiest states by category.
// States keep their rank order; categories within a state are most teams first.
func CategoryShare(v model.View, topStates int) []ShareRow {
	states := ValueCounts(v, model.ColInstituteState, topStates)
	out := make([]ShareRow, 0, len(states)*2)
	for _, st := range states {
		state := st.Value
		sub := v.Filter(func(r *model.Record) bool { return r.InstituteState == state })
		for _, c := range ValueCounts(sub, model.ColCategory, 0) {
			out = append(out, ShareRow{
				State:    state,
				Category: c.Value,
				Teams:    c.Count,
				Share:    float64(c.Count) / float64(st.Count),
			})
		}
	}
	return out
}
