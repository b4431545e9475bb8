package renderer

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

// bandsPerWorker splits the frame finer than the worker count so that slow
// bands (many reflections) do not leave other workers idle
const bandsPerWorker = 4

// BandTask represents a band of rows for the worker pool
type BandTask struct {
	TaskID     int // For deterministic ordering
	MinY, MaxY int
}

// BandResult contains the result from rendering a band
type BandResult struct {
	TaskID int
	Stats  BandStats
}

// WorkerPool renders bands of one frame in parallel. Every band covers a
// disjoint row range of the shared image, so workers never write the same
// pixel. The first worker error cancels the others.
type WorkerPool struct {
	raytracer   *Raytracer
	img         *image.RGBA
	taskQueue   chan BandTask
	resultQueue chan BandResult
	numWorkers  int
	group       *errgroup.Group
	ctx         context.Context
}

// NewWorkerPool creates a worker pool writing into img. maxTasks bounds the
// number of tasks that may be submitted before Stop.
func NewWorkerPool(ctx context.Context, rt *Raytracer, img *image.RGBA, numWorkers, maxTasks int) *WorkerPool {
	group, groupCtx := errgroup.WithContext(ctx)
	return &WorkerPool{
		raytracer:   rt,
		img:         img,
		taskQueue:   make(chan BandTask, maxTasks),
		resultQueue: make(chan BandResult, maxTasks),
		numWorkers:  numWorkers,
		group:       group,
		ctx:         groupCtx,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for id := 0; id < wp.numWorkers; id++ {
		workerID := id
		wp.group.Go(func() error {
			return wp.run(workerID)
		})
	}
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// Stop waits for the workers to finish and closes the result queue. It
// returns the first worker error, typically the context's cancellation.
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Bands finished before an error are still
// reported.
func (wp *WorkerPool) run(workerID int) error {
	for task := range wp.taskQueue {
		stats, err := wp.raytracer.renderBand(wp.ctx, wp.img, task.MinY, task.MaxY)
		stats.TaskID = task.TaskID
		stats.Worker = workerID

		wp.resultQueue <- BandResult{TaskID: task.TaskID, Stats: stats}
		if err != nil {
			return err
		}
	}
	return nil
}

// splitBands divides height rows into at most n contiguous bands
func splitBands(height, n int) []BandTask {
	n = max(1, min(n, height))
	bandHeight := (height + n - 1) / n

	var tasks []BandTask
	for minY := 0; minY < height; minY += bandHeight {
		tasks = append(tasks, BandTask{
			TaskID: len(tasks),
			MinY:   minY,
			MaxY:   min(minY+bandHeight, height),
		})
	}
	return tasks
}

// renderParallel renders img on numWorkers goroutines and returns the band
// stats ordered by task. Bands never started when ctx is cancelled keep
// only their row range.
func (rt *Raytracer) renderParallel(ctx context.Context, img *image.RGBA, numWorkers int) ([]BandStats, error) {
	tasks := splitBands(rt.opts.Height, numWorkers*bandsPerWorker)

	pool := NewWorkerPool(ctx, rt, img, numWorkers, len(tasks))
	pool.Start()
	for _, task := range tasks {
		pool.SubmitTask(task)
	}
	err := pool.Stop()

	bands := make([]BandStats, len(tasks))
	for i, task := range tasks {
		bands[i] = BandStats{TaskID: task.TaskID, MinY: task.MinY, MaxY: task.MaxY}
	}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		bands[result.TaskID] = result.Stats
	}
	return bands, err
}
