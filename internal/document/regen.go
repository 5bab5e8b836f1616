package document

import (
	"context"
	"sync"

	"fontedit/internal/font"
	"fontedit/internal/sourcecode"
)

// GenerateFunc renders a face snapshot. sourcecode.Generate is the default.
type GenerateFunc func(*font.Face, sourcecode.Options) string

type regenJob struct {
	gen  uint64
	face *font.Face
	opts sourcecode.Options
}

// regenerator runs source code generation on a single worker goroutine. Jobs
// go through a one slot mailbox: a newer submission replaces a pending one,
// and a result is only published while its generation is still the latest.
type regenerator struct {
	generate GenerateFunc
	publish  func(gen uint64, text string)
	finished func()

	mu      sync.Mutex
	latest  uint64
	settled uint64
	pending *regenJob
	stopped bool
	waiters []chan struct{}

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func newRegenerator(generate GenerateFunc, publish func(uint64, string), finished func()) *regenerator {
	r := &regenerator{
		generate: generate,
		publish:  publish,
		finished: finished,
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

// submit queues a job and returns its generation. It never blocks on the
// worker. After stop it does nothing and returns the last generation.
func (r *regenerator) submit(face *font.Face, opts sourcecode.Options) uint64 {
	r.mu.Lock()
	if r.stopped {
		gen := r.latest
		r.mu.Unlock()
		return gen
	}
	r.latest++
	gen := r.latest
	r.pending = &regenJob{gen: gen, face: face, opts: opts}
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return gen
}

// reset supersedes any queued or running job and publishes text directly.
func (r *regenerator) reset(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest++
	r.pending = nil
	r.publish(r.latest, text)
	r.settleLocked(r.latest)
}

func (r *regenerator) run() {
	defer close(r.done)
	for {
		select {
		case <-r.quit:
			return
		case <-r.wake:
		}

		r.mu.Lock()
		job := r.pending
		r.pending = nil
		r.mu.Unlock()
		if job == nil {
			continue
		}

		text := r.generate(job.face, job.opts)

		r.mu.Lock()
		current := job.gen == r.latest
		if current {
			r.publish(job.gen, text)
			r.settleLocked(job.gen)
		}
		r.mu.Unlock()

		if current {
			r.finished()
		} else {
			Logger().Debug("discarding superseded source code", "generation", job.gen)
		}
	}
}

func (r *regenerator) settleLocked(gen uint64) {
	if gen <= r.settled {
		return
	}
	r.settled = gen
	for _, w := range r.waiters {
		close(w)
	}
	r.waiters = nil
}

// waitIdle blocks until the latest submitted generation has been published.
func (r *regenerator) waitIdle(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.settled >= r.latest {
			r.mu.Unlock()
			return nil
		}
		w := make(chan struct{})
		r.waiters = append(r.waiters, w)
		r.mu.Unlock()

		select {
		case <-w:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// stop ends the worker. Queued jobs are dropped and anyone in waitIdle is
// released.
func (r *regenerator) stop() {
	r.once.Do(func() {
		r.mu.Lock()
		r.stopped = true
		r.pending = nil
		r.settleLocked(r.latest)
		r.mu.Unlock()
		close(r.quit)
	})
	<-r.done
}
