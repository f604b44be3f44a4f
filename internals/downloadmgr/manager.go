package downloadmgr

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when a manager is created with less than one worker
const DefaultWorkers = 8

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue   []Downloader
	workers int
	// OnProgress is called after every finished item with the number of
	// finished items and the queue length
	OnProgress func(done int, total int)
}

// New creates a new downloadmgr that runs up to workers downloads at once
func New(workers int) *DownloadManager {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &DownloadManager{workers: workers}
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start downloads the queue and returns the first error.
// Remaining downloads are cancelled after an error
func (d *DownloadManager) Start(ctx context.Context) error {
	if len(d.queue) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	var mu sync.Mutex
	done := 0
	for _, item := range d.queue {
		item := item
		g.Go(func() error {
			if err := item.Download(ctx); err != nil {
				return err
			}
			if d.OnProgress != nil {
				mu.Lock()
				done++
				d.OnProgress(done, len(d.queue))
				mu.Unlock()
			}
			return nil
		})
	}
	return g.Wait()
}
