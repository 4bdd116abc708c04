package notifications

import (
	"context"
	"log"
	"sync"

	"golang.org/x/time/rate"
)

// Job is a unit of notification work to run off the request path.
type Job func(ctx context.Context)

// Queue runs notification fan-out asynchronously so a slow mail or push
// transport never blocks the request that triggered it. Delivery is
// at-least-once; jobs must be idempotent (the database channel dedups
// by event identity). A rate limiter coalesces bursts so a storm of
// triggers does not flood the channels.
type Queue struct {
	jobs     chan Job
	workers  int
	limiter  *rate.Limiter
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool
	closeMux sync.Mutex
}

// NewQueue creates a queue with the given worker count, buffer size and
// maximum jobs-per-second rate.
func NewQueue(workers, buffer int, perSecond float64) *Queue {
	if workers < 1 {
		workers = 1
	}
	if buffer < workers {
		buffer = workers * 2
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		jobs:    make(chan Job, buffer),
		workers: workers,
		limiter: rate.NewLimiter(rate.Limit(perSecond), workers),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (q *Queue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	log.Printf("[NotificationQueue] Started %d workers", q.workers)
}

// Enqueue submits a job, dropping it with a log line when the queue is
// shutting down. Callers must have committed the triggering write
// before enqueueing. The close flag is checked under the same mutex
// Stop closes the channel under, so an enqueue racing a shutdown drops
// the job instead of hitting a closed channel.
func (q *Queue) Enqueue(job Job) {
	q.closeMux.Lock()
	defer q.closeMux.Unlock()

	if q.closed {
		log.Println("[NotificationQueue] Queue shutting down, job not submitted")
		return
	}

	select {
	case q.jobs <- job:
	case <-q.ctx.Done():
		log.Println("[NotificationQueue] Queue shutting down, job not submitted")
	}
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for {
		select {
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			if err := q.limiter.Wait(q.ctx); err != nil {
				return
			}
			job(q.ctx)
		case <-q.ctx.Done():
			return
		}
	}
}

// Stop drains the queue, waits for in-flight jobs and releases the
// workers.
func (q *Queue) Stop() {
	q.closeMux.Lock()
	if !q.closed {
		close(q.jobs)
		q.closed = true
	}
	q.closeMux.Unlock()

	q.wg.Wait()
	q.cancel()
}
