package main

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"taskboard/internal/delivery"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type recordingDelivery struct {
	served chan struct{}
	err    error
}

func (d *recordingDelivery) Serve(context.Context) error {
	close(d.served)

	return d.err
}

type recordingShutdowner struct {
	mu   sync.Mutex
	opts []fx.ShutdownOption
	done chan struct{}
}

func (s *recordingShutdowner) Shutdown(opts ...fx.ShutdownOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = append(s.opts, opts...)
	close(s.done)

	return nil
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

func TestStartServer_ServesAfterEarlierHooks(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	dbReady := false
	lc.Append(fx.Hook{OnStart: func(context.Context) error {
		dbReady = true

		return nil
	}})

	d := &recordingDelivery{served: make(chan struct{})}
	startServer(context.Background(), startServerParams{
		Lifecycle:  lc,
		Shutdowner: &recordingShutdowner{done: make(chan struct{})},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Deliveries: []delivery.Delivery{d},
	})

	select {
	case <-d.served:
		t.Fatal("served before the lifecycle started")
	default:
	}

	lc.RequireStart()
	waitFor(t, d.served)
	assert.True(t, dbReady)
	lc.RequireStop()
}

func TestStartServer_ServeFailureShutsDown(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	shutdowner := &recordingShutdowner{done: make(chan struct{})}

	startServer(context.Background(), startServerParams{
		Lifecycle:  lc,
		Shutdowner: shutdowner,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Deliveries: []delivery.Delivery{&recordingDelivery{served: make(chan struct{}), err: errors.New("address in use")}},
	})

	lc.RequireStart()
	waitFor(t, shutdowner.done)

	shutdowner.mu.Lock()
	defer shutdowner.mu.Unlock()
	require.Len(t, shutdowner.opts, 1)
	assert.Equal(t, fx.ExitCode(1), shutdowner.opts[0])
	lc.RequireStop()
}
