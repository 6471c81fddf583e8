package framework

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
)

// ErrForcedExit is returned by Wait when stop is requested twice.
var ErrForcedExit = errors.New("forced exit")

type exit struct {
	name string
	err  error
}

// Runner runs Runnables concurrently. The first one that returns
// stops all the others.
type Runner struct {
	Context context.Context

	cancel  func()
	running int
	exitCh  chan exit
	forceCh chan struct{}
}

// NewRunner creates a runner with a background context.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a runner stopped when ctx is done.
func NewRunnerWith(ctx context.Context) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	return &Runner{
		Context: ctx,
		cancel:  cancel,
		exitCh:  make(chan exit),
		forceCh: make(chan struct{}),
	}
}

// HandleSignals stops the runner on SIGINT or SIGTERM. A second signal
// makes Wait return ErrForcedExit immediately.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		glog.Infof("%v: stopping", sig)
		r.cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.forceCh)
	}()
	return r
}

// Stop cancels the context of all Runnables.
func (r *Runner) Stop() {
	r.cancel()
}

// Running returns the number of Runnables not collected by Wait.
func (r *Runner) Running() int {
	return r.running
}

// Go starts Runnables. It must not be called after Wait.
func (r *Runner) Go(runnables ...Runnable) *Runner {
	for _, runnable := range runnables {
		name := strconv.Itoa(r.running)
		if named, ok := runnable.(Named); ok {
			name = named.Name()
		}
		r.running++
		go r.run(name, runnable)
	}
	return r
}

func (r *Runner) run(name string, runnable Runnable) {
	glog.V(4).Infof("%s: started", name)
	err := runnable.Run(r.Context)
	r.cancel()
	r.exitCh <- exit{name: name, err: err}
}

// Wait waits for all Runnables and returns their errors, ignoring
// context.Canceled.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for ; r.running > 0; r.running-- {
		select {
		case <-r.forceCh:
			return ErrForcedExit
		case e := <-r.exitCh:
			if e.err == nil || e.err == context.Canceled {
				glog.V(4).Infof("%s: stopped", e.name)
				continue
			}
			glog.Errorf("%s: %v", e.name, e.err)
			errs.Add(e.err)
		}
	}
	return errs.Aggregate()
}

// RunUntilDone runs serve which doesn't accept a context. When ctx is done,
// stop is called to make serve return, and context.Canceled is returned.
func RunUntilDone(ctx context.Context, stop func(), serve func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- serve()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		stop()
		<-errCh
		return context.Canceled
	}
}
