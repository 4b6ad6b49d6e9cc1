package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"taskboard/config"
	deliverycontext "taskboard/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_Trace(t *testing.T) {
	var base bytes.Buffer
	cfg := &config.Config{}
	cfg.Database.SlowQueryThreshold = 50 * time.Millisecond
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&base, nil)), cfg)

	t.Run("record not found is quiet", func(t *testing.T) {
		base.Reset()
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), gorm.ErrRecordNotFound)
		assert.Empty(t, base.String())
	})

	t.Run("failures are errors", func(t *testing.T) {
		base.Reset()
		l.Trace(context.Background(), time.Now(), sqlFn("INSERT"), errors.New("disk full"))
		assert.Contains(t, base.String(), "gorm query failed")
		assert.Contains(t, base.String(), "disk full")
	})

	t.Run("slow queries warn", func(t *testing.T) {
		base.Reset()
		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT * FROM tasks"), nil)
		assert.Contains(t, base.String(), "gorm slow query")
	})

	t.Run("fast queries are skipped below info", func(t *testing.T) {
		base.Reset()
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
		assert.Empty(t, base.String())
	})

	t.Run("request logger is preferred", func(t *testing.T) {
		base.Reset()
		var scoped bytes.Buffer
		reqLogger := slog.New(slog.NewJSONHandler(&scoped, nil)).With(slog.String("request_id", "req-1"))
		ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

		l.Trace(ctx, time.Now(), sqlFn("UPDATE"), errors.New("boom"))
		assert.Empty(t, base.String())
		assert.Contains(t, scoped.String(), `"request_id":"req-1"`)
	})
}
