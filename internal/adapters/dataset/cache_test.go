package dataset_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/fixture"
	"github.com/okian/sihdash/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const extraRow = "2025,SIH25300,New PS,Software,Misc,Org,Dept,13,T300,New,Lee,Shortlisted,,1/2,2,IIT Delhi,New Delhi,Delhi,C-1\n"

func countingLoader(calls *int32) func(context.Context, string) (*model.Table, error) {
	return func(ctx context.Context, path string) (*model.Table, error) {
		atomic.AddInt32(calls, 1)
		return dataset.Load(ctx, path)
	}
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a cache over a CSV file", t, func() {
		dir := t.TempDir()
		path := fixture.WriteFile(dir, "outcomes.csv", fixture.OutcomesCSV)
		var calls int32
		cache := dataset.NewCache(dataset.WithLogger(logger.Nop()), dataset.WithLoader(countingLoader(&calls)))

		Convey("When the same path is requested twice", func() {
			a, err1 := cache.Get(ctx, path)
			b, err2 := cache.Get(ctx, path)

			Convey("Then the file is parsed once and the table is shared", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(a, ShouldEqual, b)
				So(atomic.LoadInt32(&calls), ShouldEqual, 1)
				So(cache.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the file changes on disk", func() {
			a, _ := cache.Get(ctx, path)
			So(os.WriteFile(path, []byte(fixture.OutcomesCSV+extraRow), 0o600), ShouldBeNil)
			later := time.Now().Add(2 * time.Second)
			So(os.Chtimes(path, later, later), ShouldBeNil)
			b, err := cache.Get(ctx, path)

			Convey("Then the new version is loaded", func() {
				So(err, ShouldBeNil)
				So(b, ShouldNotEqual, a)
				So(b.Len(), ShouldEqual, a.Len()+1)
				So(atomic.LoadInt32(&calls), ShouldEqual, 2)
			})
		})

		Convey("When the entry is invalidated", func() {
			_, _ = cache.Get(ctx, path)
			cache.Invalidate(ctx, path)
			_, err := cache.Get(ctx, path)

			Convey("Then the next Get reloads", func() {
				So(err, ShouldBeNil)
				So(atomic.LoadInt32(&calls), ShouldEqual, 2)
			})
		})

		Convey("When the first caller's context is already canceled", func() {
			strict := dataset.NewCache(dataset.WithLogger(logger.Nop()), dataset.WithLoader(
				func(ctx context.Context, p string) (*model.Table, error) {
					if err := ctx.Err(); err != nil {
						return nil, err
					}
					return dataset.Load(ctx, p)
				}))
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			tbl, err := strict.Get(canceled, path)

			Convey("Then the shared load still completes", func() {
				So(err, ShouldBeNil)
				So(tbl.Len(), ShouldEqual, 12)
				So(strict.Len(), ShouldEqual, 1)
			})
		})

		Convey("When many goroutines miss at once", func() {
			var wg sync.WaitGroup
			tables := make([]*model.Table, 16)
			for i := range tables {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					tables[i], _ = cache.Get(ctx, path)
				}(i)
			}
			wg.Wait()

			Convey("Then they all observe a loaded table", func() {
				for _, tbl := range tables {
					So(tbl, ShouldNotBeNil)
					So(tbl.Len(), ShouldEqual, 12)
				}
			})
		})
	})

	Convey("Given a file missing required columns", t, func() {
		dir := t.TempDir()
		path := fixture.WriteFile(dir, "bad.csv", "ps_id,status\nA,Winner\n")
		var calls int32
		cache := dataset.NewCache(dataset.WithLogger(logger.Nop()), dataset.WithLoader(countingLoader(&calls)))

		Convey("When it is requested twice", func() {
			tbl, err := cache.Get(ctx, path)
			_, err2 := cache.Get(ctx, path)

			Convey("Then no table is exposed and the failure is cached for that version", func() {
				So(tbl, ShouldBeNil)
				So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
				So(errors.Is(err2, dataset.ErrSchema), ShouldBeTrue)
				So(atomic.LoadInt32(&calls), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a path that does not exist", t, func() {
		cache := dataset.NewCache(dataset.WithLogger(logger.Nop()))
		_, err := cache.Get(ctx, "/nonexistent/outcomes.csv")
		So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
		So(cache.Len(), ShouldEqual, 0)
	})
}
