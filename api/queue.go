/*
queue.go - Background run queue

PURPOSE:
  Simulations take seconds to minutes, so POST /api/runs only queues the
  run and returns 202. A single worker goroutine drains the queue and
  executes runs one at a time, writing status transitions to the store.

DESIGN:
  - One worker: runs never compete for CPU and complete in queue order
  - Bounded channel: Enqueue fails fast with ErrQueueFull instead of
    blocking the HTTP handler
  - Stop cancels the in-flight run via its context and waits for the
    worker to exit

STATUS FLOW:
  queued -> running -> completed | failed

USAGE:
  queue := NewRunQueue(store, log, 16)
  queue.Start()
  // ... later
  queue.Stop()

SEE ALSO:
  - handlers.go: CreateRun enqueues
  - sim/simulation.go: Run
*/
package api

import (
	"context"
	"errors"
	"sync"

	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/logger"
	"github.com/warp/workforce-sim/sim"
)

// ErrQueueFull is returned when the queue has no room for another run.
var ErrQueueFull = errors.New("run queue is full")

// RunQueue executes queued runs sequentially.
type RunQueue struct {
	Store dataset.Store
	log   *logger.Logger

	jobs   chan *dataset.Dataset
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	active bool
}

// NewRunQueue creates a queue holding at most capacity pending runs.
func NewRunQueue(store dataset.Store, log *logger.Logger, capacity int) *RunQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &RunQueue{
		Store: store,
		log:   logger.OrNop(log).With("component", "run_queue"),
		jobs:  make(chan *dataset.Dataset, capacity),
	}
}

// Start launches the worker. A stopped queue can be started again; runs
// left in the channel are picked up by the new worker.
func (q *RunQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.active {
		return
	}
	q.ctx, q.cancel = context.WithCancel(context.Background())
	q.active = true
	q.wg.Add(1)
	go q.run(q.ctx)

	q.log.Info("started", "capacity", cap(q.jobs))
}

// Stop cancels the in-flight run and waits for the worker to exit.
// Runs still queued stay in StatusQueued.
func (q *RunQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.active {
		return
	}
	q.cancel()
	q.wg.Wait()
	q.active = false
	q.log.Info("stopped")
}

// Enqueue schedules a run that has already been saved as queued.
func (q *RunQueue) Enqueue(d *dataset.Dataset) error {
	select {
	case q.jobs <- d:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *RunQueue) run(ctx context.Context) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-q.jobs:
			q.execute(ctx, d)
		}
	}
}

func (q *RunQueue) execute(ctx context.Context, d *dataset.Dataset) {
	log := q.log.With("run_id", d.ID, "seed", d.Config.Seed())

	if err := q.Store.UpdateStatus(ctx, d.ID, dataset.StatusRunning, ""); err != nil {
		log.Error("marking run as running", "error", err)
		return
	}
	d.Status = dataset.StatusRunning
	log.Info("run started", "persons", d.Config.PopulationSize(), "days", d.Config.AnalysisDays)

	res, err := q.simulate(ctx, d)
	if err != nil {
		d.Fail(err)
		log.Warn("run failed", "error", err)
	} else {
		d.Complete(res)
		log.Info("run completed", "rows", len(d.Rows), "elapsed", d.Elapsed)
	}

	// Persist even when the queue is stopping, so the run does not stay
	// "running" forever.
	if err := q.Store.SaveRun(context.WithoutCancel(ctx), d); err != nil {
		log.Error("saving run", "error", err)
	}
}

func (q *RunQueue) simulate(ctx context.Context, d *dataset.Dataset) (*sim.Result, error) {
	s, err := sim.New(d.Config, q.log)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}
