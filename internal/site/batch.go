package site

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// maxWorkers bounds automatic worker sizing.
const maxWorkers = 64

// PageResult holds the outcome of a single page.
type PageResult struct {
	Page
	Title    string
	Err      error
	Duration time.Duration
}

// resolveWorkers determines the worker count.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
// Never more workers than pages, never less than one.
func resolveWorkers(requested, pages int) int {
	n := requested
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	if n > pages {
		n = pages
	}
	if n < 1 {
		n = 1
	}
	return n
}

// generateBatch converts pages concurrently. Results are indexed like pages.
// Once ctx is done, pages not yet started are marked with the context error.
func generateBatch(ctx context.Context, conv PageConverter, pages []Page, workers int) []PageResult {
	if len(pages) == 0 {
		return nil
	}

	results := make([]PageResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = PageResult{Page: pages[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = generatePage(ctx, conv, pages[idx])
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// generatePage converts a single page and writes it.
func generatePage(ctx context.Context, conv PageConverter, p Page) PageResult {
	start := time.Now()
	result := PageResult{Page: p}

	content, err := os.ReadFile(p.Source) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	page, err := conv.Convert(ctx, mdsite.Input{Markdown: string(content)})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Title = page.Title

	if err := fileutil.WriteFile(p.Output, page.HTML); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}
