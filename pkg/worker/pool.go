package worker

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

var ErrStopped = errors.New("worker pool stopped")

type Job func() error

// Pool runs blocking jobs on a fixed set of goroutines so update handlers
// can wait for them without pinning the dispatcher.
type Pool struct {
	maxWorkers int
	jobs       chan Job
	wg         sync.WaitGroup
	stopped    bool
	mu         sync.RWMutex
}

func NewPool(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	p := &Pool{
		maxWorkers: maxWorkers,
		jobs:       make(chan Job, maxWorkers*2),
	}
	p.start()
	return p
}

func (p *Pool) start() {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		if err := run(job); err != nil {
			logger.Debug("Worker job failed", "worker", id, "error", err)
		}
	}
}

func run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("job panicked: %v", r)
		}
	}()
	return job()
}

func (p *Pool) submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrStopped
	}

	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do queues job and waits for its result. A cancelled ctx stops the wait,
// not the job: once picked up it always runs to completion.
func (p *Pool) Do(ctx context.Context, job Job) error {
	done := make(chan error, 1)
	wrapped := func() error {
		err := run(job)
		done <- err
		return err
	}

	if err := p.submit(ctx, wrapped); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) Size() int {
	return p.maxWorkers
}

func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.stopped {
		close(p.jobs)
		p.stopped = true
	}
	p.mu.Unlock()

	p.wg.Wait()
}
