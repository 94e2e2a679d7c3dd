package framework

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
}

func (r *recorder) ctl(name string) Controller {
	return ControlFunc(func(cc ControlContext) error {
		r.events = append(r.events, name)
		return nil
	})
}

func TestLoopStepOrder(t *testing.T) {
	var rec recorder
	l := NewLoop()
	l.AddController(PrLvPostProc, rec.ctl("post"))
	l.AddController(PrLvControl, rec.ctl("control1"), rec.ctl("control2"))
	l.AddController(PrLvSense, ControlFunc(func(cc ControlContext) error {
		rec.events = append(rec.events, "sense")
		cc.PostRunAt(cc.PriorityLevel(), rec.ctl("sense-hook"))
		cc.PostRunAt(PrLvAcuate, rec.ctl("acuate-post"))
		return errors.New("logged only")
	}))

	l.Step(context.Background())
	require.Equal(t, []string{"sense", "sense-hook", "control1", "control2", "acuate-post", "post"}, rec.events)
	require.Equal(t, uint64(1), l.Ticks())

	rec.events = nil
	l.Step(context.Background())
	require.Equal(t, []string{"sense", "sense-hook", "control1", "control2", "acuate-post", "post"}, rec.events)
	require.Equal(t, uint64(2), l.Ticks())
}

func TestLoopHooksAreOneShot(t *testing.T) {
	var rec recorder
	l := NewLoop()
	l.PostRunAt(PrLvControl, rec.ctl("once"))
	l.Step(context.Background())
	l.Step(context.Background())
	require.Equal(t, []string{"once"}, rec.events)

	rec.events = nil
	l.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.PostRunAt(PrLvControl, ControlFunc(func(cc ControlContext) error {
			rec.events = append(rec.events, "hook")
			// re-added from a hook, runs next tick.
			cc.PostRunAt(PrLvControl, rec.ctl("next"))
			return nil
		}))
		return nil
	}))
	l.Step(context.Background())
	require.Equal(t, []string{"hook"}, rec.events)
}

func TestLoopTickNumbers(t *testing.T) {
	var ticks []uint64
	l := NewLoop()
	l.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		ticks = append(ticks, cc.Tick())
		require.False(t, cc.Time().IsZero())
		return nil
	}))
	for i := 0; i < 3; i++ {
		l.Step(context.Background())
	}
	require.Equal(t, []uint64{1, 2, 3}, ticks)
}

type runnableFunc func(context.Context) error

func (f runnableFunc) Run(ctx context.Context) error { return f(ctx) }

func TestLoopRunStopsOnCancel(t *testing.T) {
	ticked := make(chan struct{}, 1)
	started := make(chan struct{})
	l := &Loop{Interval: time.Millisecond}
	l.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		select {
		case ticked <- struct{}{}:
		default:
		}
		return nil
	}))
	l.AddRunnable(runnableFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	<-started
	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("no tick")
	}
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}

func TestRunnerAggregatesErrors(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")
	r := NewRunner().Go(
		runnableFunc(func(context.Context) error { return errA }),
		NamedRun("b", runnableFunc(func(context.Context) error { return errB })),
		runnableFunc(func(context.Context) error { return context.Canceled }),
	)
	err := r.Wait()
	require.Error(t, err)
	agg, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Len(t, agg.Errors, 2)
	require.Contains(t, agg.Errors, errA)
	require.Contains(t, agg.Errors, errB)
	require.Contains(t, err.Error(), "2 errors")
}

type closeRecorder struct {
	closed chan struct{}
}

func (c *closeRecorder) Close() error {
	close(c.closed)
	return nil
}

func TestRunWithContextCloser(t *testing.T) {
	c := &closeRecorder{closed: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunWithContextCloser(ctx, c, func() error {
		<-c.closed
		return io.EOF
	})
	require.Equal(t, context.Canceled, err)

	c = &closeRecorder{closed: make(chan struct{})}
	err = RunWithContextCloser(context.Background(), c, func() error { return io.EOF })
	require.Equal(t, io.EOF, err)
	<-c.closed
}
