package workers

import (
	"context"
	"sync"
	"time"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}

// periodicJob is a job started with an interval and stopped explicitly, such
// as the client sync job.
type periodicJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type jobWorker struct {
	job      periodicJob
	interval time.Duration
}

// NewJobWorker adapts a periodic job to [Worker]: the job runs every interval
// until ctx is cancelled.
func NewJobWorker(job periodicJob, interval time.Duration) Worker {
	return &jobWorker{job: job, interval: interval}
}

func (j *jobWorker) Run(ctx context.Context) {
	j.job.Start(ctx, j.interval)
	<-ctx.Done()
	j.job.Stop()
}
