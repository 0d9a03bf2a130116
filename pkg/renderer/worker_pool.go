package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-ao-renderer/pkg/core"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Y int // Image row, 0 is the top
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Y      int
	Pixels []core.RGB
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks.
// Every row gets a fresh sampler seeded from the row index, so the image does
// not depend on which worker renders which row.
type Worker struct {
	ID          int
	raytracer   *Raytracer
	samplerKind string
	seed        int64
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, height, numWorkers int, samplerKind string, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, height),   // Buffer for all rows
		resultQueue: make(chan RowResult, height), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			samplerKind: samplerKind,
			seed:        seed,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers. Once ctx is cancelled, workers answer the remaining
// tasks with ctx.Err() instead of rendering them.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- RowResult{Y: task.Y, Error: err}
			continue
		}

		sampler, err := core.NewSampler(w.samplerKind, core.DeriveSeed(w.seed, task.Y))
		if err != nil {
			w.resultQueue <- RowResult{Y: task.Y, Error: err}
			continue
		}

		pixels, stats := w.raytracer.RenderRow(task.Y, sampler)

		w.resultQueue <- RowResult{
			Y:      task.Y,
			Pixels: pixels,
			Stats:  stats,
		}
	}
}
