package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the tick interval used when none is set.
const DefaultInterval = 100 * time.Millisecond

// Loop ticks controllers at a fixed interval. Controllers of one tick run
// sequentially on the loop goroutine, ordered by priority level and then by
// registration. There is no wake-up other than the interval.
type Loop struct {
	Interval time.Duration

	controllers [PriorityLevels]controllerList
	runners     []Runnable
	tick        uint64
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type controllerList struct {
	controllers []Controller
	postHooks   []Controller
	lock        sync.Mutex
}

type iteration struct {
	*Loop
	ctx           context.Context
	time          time.Time
	tick          uint64
	priorityLevel int
}

// NewLoop creates a Loop with DefaultInterval.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers at a priority level. Controllers
// which are also Runnable are started with the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	lst := &l.controllers[priorityLevel]
	lst.controllers = append(lst.controllers, ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds background runners started with the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable. It ticks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	defer func() {
		if err := runner.Wait(); err != nil {
			glog.Errorf("runner error: %v", err)
		}
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.step(ctx, now)
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail(ctx context.Context) {
	if err := l.Run(ctx); err != nil && err != context.Canceled {
		glog.Fatalln(err)
	}
}

// Step runs a single tick immediately without starting runners.
func (l *Loop) Step(ctx context.Context) {
	l.step(ctx, time.Now())
}

// Ticks returns the number of ticks executed.
func (l *Loop) Ticks() uint64 {
	return l.tick
}

// PostRunAt implements LoopControl.
func (l *Loop) PostRunAt(priorityLevel int, hooks ...Controller) {
	lst := &l.controllers[priorityLevel]
	lst.lock.Lock()
	lst.postHooks = append(lst.postHooks, hooks...)
	lst.lock.Unlock()
}

func (l *Loop) step(ctx context.Context, now time.Time) {
	l.tick++
	iter := &iteration{Loop: l, ctx: ctx, time: now, tick: l.tick}
	for i := 0; i < PriorityLevels; i++ {
		iter.priorityLevel = i
		l.controllers[i].run(iter)
	}
}

func (t *iteration) Context() context.Context { return t.ctx }
func (t *iteration) Time() time.Time          { return t.time }
func (t *iteration) Tick() uint64             { return t.tick }
func (t *iteration) PriorityLevel() int       { return t.priorityLevel }

func (c *controllerList) run(iter *iteration) {
	runControllers(iter, c.controllers)
	c.lock.Lock()
	hooks := c.postHooks
	c.postHooks = nil
	c.lock.Unlock()
	runControllers(iter, hooks)
}

func runControllers(iter *iteration, ctls []Controller) {
	for _, ctl := range ctls {
		if err := ctl.Control(iter); err != nil {
			glog.Errorf("tick %d: controller error: %v", iter.tick, err)
		}
	}
}
