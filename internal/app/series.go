package service

import "github.com/okian/sihdash/internal/domain/model"

type seriesDef struct {
	column string
	title  string
}

var seriesByName = map[string]seriesDef{ //nolint:gochecknoglobals // fixed chart table
	"years":         {model.ColEditionYear, "Submissions by edition year"},
	"categories":    {model.ColCategory, "Submissions by category"},
	"themes":        {model.ColTheme, "Top themes"},
	"states":        {model.ColInstituteState, "Top states"},
	"institutes":    {model.ColInstituteName, "Top institutes"},
	"organizations": {model.ColOrganization, "Top organizations"},
	"departments":   {model.ColDepartment, "Top departments"},
	"statuses":      {model.ColStatus, "Teams by status"},
}

var seriesOrder = []string{ //nolint:gochecknoglobals // fixed chart table
	"years", "categories", "themes", "states", "institutes", "organizations", "departments", "statuses",
}
