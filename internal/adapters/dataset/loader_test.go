package dataset_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/fixture"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given the outcomes fixture", t, func() {
		tbl := fixture.Table()

		Convey("Then every row is loaded in file order", func() {
			So(tbl.Len(), ShouldEqual, 12)
			So(tbl.Records[0].TeamID, ShouldEqual, "T100")
			So(tbl.Records[11].TeamID, ShouldEqual, "T208")
		})

		Convey("Then derived submission columns follow the header", func() {
			So(tbl.HasColumn(model.ColSubmissionsReceived), ShouldBeTrue)
			So(tbl.HasColumn(model.ColSubmissionsLimit), ShouldBeTrue)
			So(tbl.Columns[len(tbl.Columns)-1], ShouldEqual, model.ColSubmissionsLimit)
		})

		Convey("Then total_submission is split into received and limit", func() {
			r := tbl.Records[3]
			So(*r.SubmissionsReceived, ShouldEqual, 500)
			So(*r.SubmissionsLimit, ShouldEqual, 500)
			z := tbl.Records[6]
			So(*z.SubmissionsReceived, ShouldEqual, 0)
			So(*z.SubmissionsLimit, ShouldEqual, 0)
		})

		Convey("Then a value without a separator leaves both parts absent", func() {
			r := tbl.Records[10]
			So(r.SubmissionsReceived, ShouldBeNil)
			So(r.SubmissionsLimit, ShouldBeNil)
			So(r.TotalSubmission, ShouldEqual, "12")
		})

		Convey("Then an unparseable year becomes 0", func() {
			So(tbl.Records[10].EditionYear, ShouldEqual, 0)
			So(tbl.Records[0].EditionYear, ShouldEqual, 2024)
		})

		Convey("Then text is trimmed and nulls become Unknown", func() {
			So(tbl.Records[10].TeamName, ShouldEqual, "Spark")
			So(tbl.Records[8].Department, ShouldEqual, model.Unknown)
			So(tbl.Records[8].IsNull(model.ColDepartment), ShouldBeTrue)
			So(tbl.Records[11].TeamName, ShouldEqual, model.Unknown)
			So(tbl.Records[11].IsNull(model.ColTeamName), ShouldBeTrue)
			So(tbl.Records[0].IsNull(model.ColTeamName), ShouldBeFalse)
		})

		Convey("Then numeric nulls stay null", func() {
			So(tbl.Records[1].PrizeMoney, ShouldBeNil)
			So(tbl.Records[4].PrizeMoney, ShouldBeNil)
			So(tbl.Records[10].MaxSubmission, ShouldBeNil)
			So(*tbl.Records[8].PrizeMoney, ShouldEqual, 100000)
		})

		Convey("Then extra columns are kept as text", func() {
			v, ok := tbl.Records[2].Text("serial_no")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "3")
		})
	})
}

func TestParseFailures(t *testing.T) {
	ctx := context.Background()

	Convey("Given malformed input", t, func() {
		Convey("When the file is empty", func() {
			_, err := dataset.Parse(ctx, strings.NewReader(""), "empty.csv")
			So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
			var le *dataset.LoadError
			So(errors.As(err, &le), ShouldBeTrue)
			So(le.Path, ShouldEqual, "empty.csv")
		})

		Convey("When a row has more fields than the header", func() {
			_, err := dataset.Parse(ctx, strings.NewReader("ps_id,status\nA,Winner,extra\n"), "wide.csv")
			So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "line 2")
		})

		Convey("When quoting is broken", func() {
			_, err := dataset.Parse(ctx, strings.NewReader("ps_id,status\n\"A,Winner\n"), "quote.csv")
			So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
		})

		Convey("When a header is duplicated", func() {
			_, err := dataset.Parse(ctx, strings.NewReader("ps_id,ps_id\nA,B\n"), "dup.csv")
			So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
		})

		Convey("When the file does not exist", func() {
			_, err := dataset.Load(ctx, "/nonexistent/outcomes.csv")
			So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
		})
	})

	Convey("Given numbers too large for an int", t, func() {
		tbl, err := dataset.Parse(ctx, strings.NewReader(
			"edition_year,max_submission,total_submission\n1e20,1e30,1e20/-1e25\n2025.0,50,40/50.9\n"), "huge.csv")
		So(err, ShouldBeNil)

		Convey("Then they fall back to the documented sentinels", func() {
			huge := tbl.Records[0]
			So(huge.EditionYear, ShouldEqual, 0)
			So(huge.MaxSubmission, ShouldBeNil)
			So(*huge.SubmissionsReceived, ShouldEqual, 0)
			So(*huge.SubmissionsLimit, ShouldEqual, 0)
		})

		Convey("Then in-range fractions truncate", func() {
			ok := tbl.Records[1]
			So(ok.EditionYear, ShouldEqual, 2025)
			So(*ok.MaxSubmission, ShouldEqual, 50)
			So(*ok.SubmissionsLimit, ShouldEqual, 50)
		})
	})

	Convey("Given short rows and a BOM", t, func() {
		tbl, err := dataset.Parse(ctx, strings.NewReader("\ufeffps_id,status,prize_money\nA,Winner\n"), "short.csv")

		Convey("Then missing trailing cells are null", func() {
			So(err, ShouldBeNil)
			So(tbl.HasColumn(model.ColPSID), ShouldBeTrue)
			So(tbl.Records[0].PSID, ShouldEqual, "A")
			So(tbl.Records[0].PrizeMoney, ShouldBeNil)
			So(tbl.HasColumn(model.ColSubmissionsReceived), ShouldBeFalse)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Given a table missing required columns", t, func() {
		tbl, err := dataset.Parse(context.Background(), strings.NewReader("status,ps_id,team_id\nWinner,A,T1\n"), "partial.csv")
		So(err, ShouldBeNil)

		Convey("When checking the schema", func() {
			err := dataset.CheckSchema(tbl)

			Convey("Then a SchemaError lists exactly the absent columns, sorted", func() {
				var se *dataset.SchemaError
				So(errors.As(err, &se), ShouldBeTrue)
				So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
				So(se.Missing, ShouldResemble, []string{
					"category", "department", "edition_year", "institute_city", "institute_name",
					"institute_state", "max_submission", "organization", "prize_money",
					"problem_statement_title", "theme", "total_submission",
				})
				So(err.Error(), ShouldContainSubstring, "edition_year")
			})
		})
	})

	Convey("Given the full fixture", t, func() {
		So(dataset.CheckSchema(fixture.Table()), ShouldBeNil)
	})
}

func TestExportRoundTrip(t *testing.T) {
	Convey("Given a filtered view of the fixture", t, func() {
		tbl := fixture.Table()
		view := tbl.All().Filter(func(r *model.Record) bool { return r.EditionYear == 2025 })

		Convey("When it is exported with all columns and reloaded", func() {
			var buf bytes.Buffer
			So(dataset.WriteView(&buf, view, nil), ShouldBeNil)
			back, err := dataset.Parse(context.Background(), &buf, "export.csv")

			Convey("Then row count and column set are preserved", func() {
				So(err, ShouldBeNil)
				So(back.Len(), ShouldEqual, view.Len())
				So(back.Columns, ShouldResemble, tbl.Columns)
				So(dataset.CheckSchema(back), ShouldBeNil)
				So(*back.Records[0].SubmissionsReceived, ShouldEqual, 500)
			})

			Convey("Then text nulls are still null after the reload", func() {
				So(back.Records[5].TeamID, ShouldEqual, "T205")
				So(back.Records[5].IsNull(model.ColDepartment), ShouldBeTrue)
				So(back.Records[7].TeamID, ShouldEqual, "T208")
				So(back.Records[7].IsNull(model.ColTeamName), ShouldBeTrue)
				So(back.Records[7].IsNull(model.ColAISHECode), ShouldBeTrue)
				So(back.Records[0].IsNull(model.ColTeamName), ShouldBeFalse)
			})
		})

		Convey("When selected columns are exported", func() {
			var buf bytes.Buffer
			So(dataset.WriteView(&buf, view, []string{model.ColTeamID, model.ColPrizeMoney}), ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

			Convey("Then only those columns appear and nulls are empty", func() {
				So(lines[0], ShouldEqual, "team_id,prize_money")
				So(lines[1], ShouldEqual, "T200,150000")
				So(lines[2], ShouldEqual, "T201,")
				So(len(lines), ShouldEqual, view.Len()+1)
			})
		})
	})
}
