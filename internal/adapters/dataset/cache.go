package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/pkg/logger"
	"github.com/okian/sihdash/pkg/metrics"
)

// signature identifies one version of a file on disk.
type signature struct {
	modTime time.Time
	size    int64
}

type entry struct {
	sig   signature
	table *model.Table
	err   error // schema failure for this version
}

// Cache holds one validated table per resolved path, replaced when the file's
// modification signature changes or the entry is invalidated.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	logger   logger.Logger
	validate func(*model.Table) error
	load     func(context.Context, string) (*model.Table, error)
}

// NewCache creates a cache that loads with Load and validates with CheckSchema.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[string]entry),
		validate: CheckSchema,
		load:     Load,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}

// Get returns the table for path, loading it on a miss. A schema failure is
// cached with the file version it belongs to; load failures are not cached.
func (c *Cache) Get(ctx context.Context, path string) (*model.Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	sig, err := stat(abs)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	e, ok := c.entries[abs]
	c.mu.RUnlock()
	if ok && e.sig == sig {
		metrics.RecordCacheHit()
		c.logger.Debug(ctx, "dataset cache hit", logger.String("path", abs))
		return e.table, e.err
	}

	metrics.RecordCacheMiss()
	key := fmt.Sprintf("%s|%d|%d", abs, sig.modTime.UnixNano(), sig.size)
	// the load is shared by every caller joined on key
	fillCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fill(fillCtx, abs, sig)
	})
	if err != nil {
		return nil, err
	}
	e = v.(entry)
	return e.table, e.err
}

func (c *Cache) fill(ctx context.Context, abs string, sig signature) (entry, error) {
	start := time.Now()
	table, err := c.load(ctx, abs)
	took := time.Since(start)
	metrics.RecordDatasetLoadDuration(float64(took.Microseconds()) / 1000)
	if err != nil {
		metrics.RecordDatasetLoad("load_error")
		c.logger.Error(ctx, "dataset load failed", logger.String("path", abs), logger.Error(err))
		return entry{}, err
	}

	e := entry{sig: sig, table: table}
	if verr := c.validate(table); verr != nil {
		var se *SchemaError
		if errors.As(verr, &se) {
			c.logger.Error(ctx, "dataset schema invalid", logger.String("path", abs), logger.Strings("missing", se.Missing))
		}
		metrics.RecordDatasetLoad("schema_error")
		e.table, e.err = nil, verr
	} else {
		metrics.RecordDatasetLoad("ok")
		metrics.UpdateDatasetRows(table.Len())
		c.logger.Info(ctx, "dataset loaded",
			logger.String("path", abs),
			logger.Int("rows", table.Len()),
			logger.Duration("took", took))
	}

	c.mu.Lock()
	c.entries[abs] = e
	c.mu.Unlock()
	return e, nil
}

// Invalidate drops the entry for path so the next Get reloads it.
func (c *Cache) Invalidate(ctx context.Context, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	c.mu.Lock()
	delete(c.entries, abs)
	c.mu.Unlock()
	c.logger.Info(ctx, "dataset cache invalidated", logger.String("path", abs))
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func stat(path string) (signature, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return signature{}, &LoadError{Path: path, Err: err}
	}
	if fi.IsDir() {
		return signature{}, &LoadError{Path: path, Err: errors.New("is a directory")}
	}
	return signature{modTime: fi.ModTime(), size: fi.Size()}, nil
}
