package execution

import (
	"context"
	"sync"
	"time"

	"ccr/internal/domain"
)

// CaseRunner runs one test case; *Runner implements it
type CaseRunner interface {
	Run(ctx context.Context, tc domain.TestCase, workerID int) domain.TestResult
}

// WorkerPool manages a pool of workers for parallel test case execution
type WorkerPool struct {
	workers   int
	runner    CaseRunner
	scheduler Scheduler
	progress  Progress
	failFast  bool
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(workers int, runner CaseRunner, scheduler Scheduler) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		workers:   workers,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// SetFailFast makes Execute stop handing out cases after the first failure
func (wp *WorkerPool) SetFailFast(failFast bool) {
	wp.failFast = failFast
}

// Execute runs the cases and returns their results in input order
func (wp *WorkerPool) Execute(ctx context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	if !wp.failFast {
		return wp.executeAll(ctx, cases)
	}
	return wp.executeFailFast(ctx, cases)
}

type indexedResult struct {
	pos    int
	result domain.TestResult
}

// tally tracks progress counts across workers
type tally struct {
	mu        sync.Mutex
	completed int
	passed    int
	failed    int
	progress  Progress
}

func (t *tally) add(result domain.TestResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed++
	if result.Success {
		t.passed++
	} else {
		t.failed++
	}
	if t.progress != nil {
		t.progress.Update(t.completed, t.passed, t.failed)
	}
}

// executeAll runs every case; each worker takes its share from the scheduler.
func (wp *WorkerPool) executeAll(ctx context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error) {
	distribution := wp.scheduler.Schedule(len(cases), wp.workers)
	results := make(chan indexedResult, len(cases))
	counts := &tally{progress: wp.progress}
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, share := range distribution {
		wg.Add(1)
		go func(workerID int, share []int) {
			defer wg.Done()
			for _, pos := range share {
				if ctx.Err() != nil {
					return
				}
				result := wp.runner.Run(ctx, cases[pos], workerID)
				results <- indexedResult{pos: pos, result: result}
				counts.add(result)
			}
		}(i+1, share)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	all := collect(results, len(cases))
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return all, time.Since(startTime), ctx.Err()
}

// executeFailFast runs cases and stops after the first failure.
func (wp *WorkerPool) executeFailFast(parent context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	queue := make(chan int, 1)
	results := make(chan indexedResult, len(cases))

	go func() {
		defer close(queue)
		for pos := range cases {
			select {
			case <-ctx.Done():
				return
			case queue <- pos:
			}
		}
	}()

	var mu sync.Mutex
	var seenFailure bool
	counts := &tally{progress: wp.progress}
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for pos := range queue {
				result := wp.runner.Run(ctx, cases[pos], workerID)
				mu.Lock()
				done := seenFailure
				if !done && !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
				if done {
					continue
				}
				results <- indexedResult{pos: pos, result: result}
				counts.add(result)
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	all := collect(results, len(cases))
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return all, time.Since(startTime), parent.Err()
}

// collect drains results and orders them by input position
func collect(results <-chan indexedResult, capacity int) []domain.TestResult {
	byPos := make([]*domain.TestResult, capacity)
	for r := range results {
		result := r.result
		byPos[r.pos] = &result
	}
	all := make([]domain.TestResult, 0, capacity)
	for _, r := range byPos {
		if r != nil {
			all = append(all, *r)
		}
	}
	return all
}
