// Package fixture provides a small outcomes snapshot shared by package tests.
package fixture

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/domain/model"
)

// OutcomesCSV covers two editions, a bad year, a ratio with a zero limit,
// a total_submission without a separator and several null cells.
const OutcomesCSV = `edition_year,ps_id,problem_statement_title,category,theme,organization,department,serial_no,team_id,team_name,team_leader_name,status,prize_money,total_submission,max_submission,institute_name,institute_city,institute_state,aishe_code
2024,SIH1524,Smart Irrigation,Software,Agriculture,Ministry of Agriculture,Dept of Agri,1,T100,AgroBots,Asha,Winner,100000,120/200,200,IIT Delhi,New Delhi,Delhi,C-1
2024,SIH1524,Smart Irrigation,Software,Agriculture,Ministry of Agriculture,Dept of Agri,2,T101,FieldMinds,Ravi,Shortlisted,,120/200,200,NIT Trichy,Tiruchirappalli,Tamil Nadu,C-2
2024,SIH1610,Flood Sensor,Hardware,Disaster Management,Ministry of Jal Shakti,Water Resources,3,T102,RiverWatch,Meena,Joint Winner,50000,80/100,100,IIT Delhi,New Delhi,Delhi,C-1
2025,SIH25001,Crop Yield AI,Software,Agriculture,Ministry of Agriculture,Dept of Agri,4,T200,YieldX,Kiran,Winner,150000,500/500,500,IIT Delhi,New Delhi,Delhi,C-1
2025,SIH25001,Crop Yield AI,Software,Agriculture,Ministry of Agriculture,Dept of Agri,5,T201,GreenByte,Leela,Waitlist,nan,500/500,500,Anna University,Chennai,Tamil Nadu,C-3
2025,SIH25001,Crop Yield AI,Software,Agriculture,Ministry of Agriculture,Dept of Agri,6,T202,SoilSense,Arjun,Shortlisted,,500/500,500,NIT Trichy,Tiruchirappalli,Tamil Nadu,C-2
2025,SIH25056,Rail Track Vision,Hardware,Transportation,Ministry of Railways,Railway Board,7,T203,TrackEye,Nisha,Winner,,0/0,0,COEP,Pune,Maharashtra,C-4
2025,SIH25056,Rail Track Vision,Hardware,Transportation,Ministry of Railways,Railway Board,8,T204,RailNet,Vikram,Shortlisted,,0/0,0,IIT Bombay,Mumbai,Maharashtra,C-5
2025,SIH25100,Health Records,Software,MedTech,Ministry of Health,,9,T205,MediChain,Sara,First Prize,"1,00,000",40/50,50,Anna University,Chennai,Tamil Nadu,C-3
2025,SIH25100,Health Records,Software,MedTech,Ministry of Health,,10,T206,CareLink,Dev,Consolation Prize,25000,40/50,50,IIT Delhi,New Delhi,Delhi,C-1
abc,SIH25200,Open Innovation,Software,Miscellaneous,Student Innovation,AICTE,11,T207,  Spark  ,Ira,Shortlisted,,12,,IIT Bombay,Mumbai,Maharashtra,C-5
2025,SIH25100,Health Records,Software,MedTech,Ministry of Health,,12,T208,,Om,Disqualified,,40/50,50,COEP,Pune,Maharashtra,
`

// Table parses OutcomesCSV. It panics on error.
func Table() *model.Table {
	t, err := dataset.Parse(context.Background(), strings.NewReader(OutcomesCSV), "fixture.csv")
	if err != nil {
		panic(err)
	}
	return t
}

// WriteFile writes content to name under dir and returns the path. It panics on error.
func WriteFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}
