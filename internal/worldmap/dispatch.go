package worldmap

import "context"

// Runner starts a background job. The GUI uses GoRunner; tests run jobs
// inline or hold them to control completion order.
type Runner func(job func())

func GoRunner(job func()) { go job() }

const inboxSize = 64

// dispatcher runs network calls off the UI thread and hands their results
// back as closures that only ever execute inside poll, on the UI thread.
type dispatcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	run    Runner
	inbox  chan func()
}

func newDispatcher(run Runner) *dispatcher {
	if run == nil {
		run = GoRunner
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &dispatcher{
		ctx:    ctx,
		cancel: cancel,
		run:    run,
		inbox:  make(chan func(), inboxSize),
	}
}

func (d *dispatcher) submit(job func(ctx context.Context) func()) {
	d.run(func() {
		apply := job(d.ctx)
		if apply == nil {
			return
		}
		select {
		case d.inbox <- apply:
		case <-d.ctx.Done():
		}
	})
}

func (d *dispatcher) poll() int {
	n := 0
	for {
		select {
		case apply := <-d.inbox:
			apply()
			n++
		default:
			return n
		}
	}
}

func (d *dispatcher) close() {
	d.cancel()
}
