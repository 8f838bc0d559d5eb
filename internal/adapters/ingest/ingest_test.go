package ingest_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/adapters/ingest"
	"github.com/okian/sihdash/internal/fixture"
	"github.com/okian/sihdash/pkg/logger"
)

const statementsCSV = "\ufeffproblem_statement_title,category,ps_number,total_submission,theme\n" +
	"Crop Yield AI,Software,SIH25001,500/500,Agriculture\n" +
	"Rail Track Vision,Hardware,SIH25056,12,Transportation\n" +
	"Crop Yield AI (dup),Software,SIH25001,1/1,Agriculture\n"

const batchOneCSV = "ps_id,organization,department,serial_no,idea_id,team_id,team_name,team_leader_name,aishe_code,institute_name,institute_city,institute_state,status\n" +
	"SIH25001,Ministry of Agriculture,Dept of Agri,1,I1,T200,YieldX,Kiran,C-1,IIT Delhi,New Delhi,Delhi,Shortlisted\n" +
	"SIH25001,Ministry of Agriculture,Dept of Agri,2,I2,T201,GreenByte,Leela,C-3,Anna University,Chennai,Tamil Nadu,Shortlisted\n"

const batchTwoCSV = "ps_id,organization,department,serial_no,idea_id,team_id,team_name,team_leader_name,aishe_code,institute_name,institute_city,institute_state,status\n" +
	"SIH25056,Ministry of Railways,Railway Board,3,I3,T203,TrackEye,Nisha,C-4,COEP,Pune,Maharashtra,Shortlisted\n" +
	"SIH99999,Unknown Org,,4,I4,T204,Orphan,Om,,IIT Bombay,Mumbai,Maharashtra,Shortlisted\n"

const resultsCSV = "ps_id,team_id,idea_id,team_name,status,prize_money\n" +
	"SIH25001,T200,I1,YieldX,Winner,150000\n" +
	",T900,I9,Ghost,Winner,1\n" +
	"SIH25056,T300,I7,LateEntry,Consolation Prize,25000\n"

func TestReaders(t *testing.T) {
	convey.Convey("Given scraper outputs", t, func() {
		convey.Convey("When reading problem statements", func() {
			ps, err := ingest.ReadProblemStatements(strings.NewReader(statementsCSV), "ps.csv")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then repeated numbers keep the first row", func() {
				convey.So(len(ps), convey.ShouldEqual, 2)
				convey.So(ps[0].Title, convey.ShouldEqual, "Crop Yield AI")
				convey.So(ps[0].TotalSubmission, convey.ShouldEqual, "500/500")
			})
		})

		convey.Convey("When reading results", func() {
			res, err := ingest.ReadResults(strings.NewReader(resultsCSV), "results.csv")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then rows without a ps_id are dropped", func() {
				convey.So(len(res), convey.ShouldEqual, 2)
				convey.So(res[1].TeamID, convey.ShouldEqual, "T300")
			})
		})

		convey.Convey("When a batch lacks a needed column", func() {
			_, err := ingest.ReadTeams(strings.NewReader("ps_id,team_name\nSIH1,A\n"), "batch.csv")

			convey.Convey("Then the missing columns are named", func() {
				convey.So(errors.Is(err, ingest.ErrMissingColumns), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "team_id")
				convey.So(err.Error(), convey.ShouldContainSubstring, "status")
			})
		})
	})
}

func TestMerge(t *testing.T) {
	convey.Convey("Given parsed scraper outputs", t, func() {
		ps, _ := ingest.ReadProblemStatements(strings.NewReader(statementsCSV), "ps.csv")
		teams, _ := ingest.ReadTeams(strings.NewReader(batchOneCSV+batchTwoCSV[strings.Index(batchTwoCSV, "\n")+1:]), "b.csv")
		res, _ := ingest.ReadResults(strings.NewReader(resultsCSV), "results.csv")

		rows := ingest.Merge(2025, ps, teams, res)
		byTeam := make(map[string][]string, len(rows))
		cols := ingest.Columns()
		at := func(row []string, col string) string {
			for i, c := range cols {
				if c == col {
					return row[i]
				}
			}
			return "?"
		}
		for _, r := range rows {
			byTeam[at(r, "team_id")] = r
		}

		convey.Convey("Then every team is joined to its problem statement", func() {
			convey.So(len(rows), convey.ShouldEqual, 5)
			convey.So(at(byTeam["T201"], "problem_statement_title"), convey.ShouldEqual, "Crop Yield AI")
			convey.So(at(byTeam["T201"], "max_submission"), convey.ShouldEqual, "500")
			convey.So(at(byTeam["T203"], "max_submission"), convey.ShouldEqual, "")
			convey.So(at(byTeam["T200"], "edition_year"), convey.ShouldEqual, "2025")
		})

		convey.Convey("Then unmatched statements leave the joined fields empty", func() {
			convey.So(at(byTeam["T204"], "problem_statement_title"), convey.ShouldEqual, "")
			convey.So(at(byTeam["T204"], "institute_state"), convey.ShouldEqual, "Maharashtra")
		})

		convey.Convey("Then finale results overlay status and prize by team", func() {
			convey.So(at(byTeam["T200"], "status"), convey.ShouldEqual, "Winner")
			convey.So(at(byTeam["T200"], "prize_money"), convey.ShouldEqual, "150000")
			convey.So(at(byTeam["T201"], "status"), convey.ShouldEqual, "Shortlisted")
		})

		convey.Convey("Then results for teams outside the shortlist are appended", func() {
			late := byTeam["T300"]
			convey.So(late, convey.ShouldNotBeNil)
			convey.So(at(late, "team_name"), convey.ShouldEqual, "LateEntry")
			convey.So(at(late, "theme"), convey.ShouldEqual, "Transportation")
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given scraper files on disk", t, func() {
		dir := t.TempDir()
		in := ingest.Inputs{
			ProblemStatements: fixture.WriteFile(dir, "ps.csv", statementsCSV),
			Shortlisted:       filepath.Join(dir, "shortlisted_*.csv"),
			Results:           fixture.WriteFile(dir, "results.csv", resultsCSV),
			Year:              2025,
		}
		fixture.WriteFile(dir, "shortlisted_1.csv", batchOneCSV)
		fixture.WriteFile(dir, "shortlisted_2.csv", batchTwoCSV)

		convey.Convey("When merging", func() {
			var out bytes.Buffer
			n, err := ingest.Run(context.Background(), in, &out, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, 5)

			convey.Convey("Then the output loads as a valid dashboard dataset", func() {
				tbl, err := dataset.Parse(context.Background(), &out, "merged.csv")
				convey.So(err, convey.ShouldBeNil)
				convey.So(dataset.CheckSchema(tbl), convey.ShouldBeNil)
				convey.So(tbl.Len(), convey.ShouldEqual, 5)
				convey.So(tbl.Records[0].TeamID, convey.ShouldEqual, "T200")
				convey.So(tbl.Records[2].TeamID, convey.ShouldEqual, "T203")
			})
		})

		convey.Convey("When the glob matches nothing", func() {
			in.Shortlisted = filepath.Join(dir, "none_*.csv")
			_, err := ingest.Run(context.Background(), in, &bytes.Buffer{}, logger.Nop())

			convey.Convey("Then no input is reported", func() {
				convey.So(errors.Is(err, ingest.ErrNoInput), convey.ShouldBeTrue)
			})
		})
	})
}
