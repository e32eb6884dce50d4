package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/loader"
)

// probeWorkers bounds concurrent availability checks against the source.
const probeWorkers = 4

// probeAvailable fetches every set's document with a fixed pool of workers
// and reports, by position, which ones could be fetched.
func probeAvailable(
	ctx context.Context,
	source loader.Source,
	sets []domain.SetDescriptor,
	logger *slog.Logger,
) []bool {
	ok := make([]bool, len(sets))
	jobs := make(chan int)

	workers := min(probeWorkers, len(sets))
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if _, err := source.Fetch(ctx, sets[i].Filename); err != nil {
					logger.DebugContext(ctx, "skipping unavailable set",
						"filename", sets[i].Filename,
						"error", err)
					continue
				}
				ok[i] = true
			}
		}()
	}

	for i := range sets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return ok
}
