// Package types contains the view payloads returned by the service.
package types

import (
	"github.com/okian/sihdash/internal/domain/filter"
	"github.com/okian/sihdash/internal/domain/rollup"
)

// Stats reports service state on GET /stats.
type Stats struct {
	Started         bool   `json:"started"`
	DataPath        string `json:"data_path"`
	SessionCapacity int    `json:"session_capacity"`
	Sessions        int64  `json:"sessions"`
	CachedDatasets  int    `json:"cached_datasets"`
}

// Session is returned when a dashboard session is created.
type Session struct {
	ID string `json:"session"`
}

// Filters is the current selection of a session together with the option
// domain of every control and the filtered record count.
type Filters struct {
	Selections map[filter.Key][]string `json:"selections"`
	Queries    map[filter.Key]string   `json:"queries"`
	Domains    []filter.Domain         `json:"domains"`
	Dropped    map[filter.Key][]string `json:"dropped,omitempty"`
	Records    int                     `json:"records"`
	Total      int                     `json:"total"`
}

// Overview is the headline view.
type Overview struct {
	Records    int            `json:"records"`
	Summary    rollup.Summary `json:"summary"`
	Years      []rollup.Count `json:"years"`
	Categories []rollup.Count `json:"categories"`
	Themes     []rollup.Count `json:"themes"`
	States     []rollup.Count `json:"states"`
	Unawarded  []string       `json:"unawarded_problem_statements"`
}

// ProblemStatements is the problem statement view.
type ProblemStatements struct {
	Records       int                            `json:"records"`
	Top           []rollup.ProblemStatementCount `json:"top"`
	Organizations []rollup.Count                 `json:"organizations"`
	Departments   []rollup.Count                 `json:"departments"`
	Rows          []rollup.ProblemStatementRow   `json:"rows"`
	Sort          string                         `json:"sort"`
	Sorts         []string                       `json:"sorts"`
}

// Institutes is the institutes and geography view.
type Institutes struct {
	Records int                   `json:"records"`
	Top     []rollup.Count        `json:"top"`
	States  []rollup.Count        `json:"states"`
	Share   []rollup.ShareRow     `json:"category_share"`
	Rows    []rollup.InstituteRow `json:"rows"`
	Sort    string                `json:"sort"`
	Sorts   []string              `json:"sorts"`
}

// Teams is the teams and outcomes view.
type Teams struct {
	Records  int                  `json:"records"`
	Totals   rollup.TeamTotals    `json:"totals"`
	Statuses []rollup.StatusRow   `json:"statuses"`
	Prizes   []rollup.PrizeBucket `json:"prizes"`
	Rows     []rollup.TeamRow     `json:"rows"`
}

// Explorer is the data explorer view. Data rows follow Columns.
type Explorer struct {
	rollup.ExplorerResult
	Records int        `json:"records"`
	Data    [][]string `json:"rows"`
}

// Series is one chartable value-count series.
type Series struct {
	Name   string         `json:"name"`
	Title  string         `json:"title"`
	Counts []rollup.Count `json:"counts"`
}

// Reload reports the result of a dataset reload.
type Reload struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}
