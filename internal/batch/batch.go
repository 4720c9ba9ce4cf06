// Package batch decodes many swatch files concurrently on a bounded worker pool.
package batch

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/alitto/pond"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/acoconv/internal/swatch"
)

// queueCapacity bounds the number of files waiting for a worker.
const queueCapacity = 1000

// ErrTaskPanicked is reported for a file whose task panicked.
var ErrTaskPanicked = errors.New("task panicked")

// Result is the outcome for one input file.
type Result struct {
	Path       string
	Collection *swatch.Collection
	Outputs    []string
	Err        error
}

// Results are in input order.
type Results []Result

// Failed returns the number of results with an error.
func (rs Results) Failed() int {
	n := 0
	for _, r := range rs {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Err joins the errors of all failed results, or returns nil.
func (rs Results) Err() error {
	var errs []error
	for _, r := range rs {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return errors.Join(errs...)
}

// Handler runs on the worker goroutine after a file decodes.
// It returns the paths of any files it wrote.
type Handler func(path string, c *swatch.Collection) ([]string, error)

// Processor decodes files in parallel. Each task gets its own reader;
// the decoder is stateless and shared.
type Processor struct {
	decoder *swatch.Decoder
	workers int
	member  string
	logger  hclog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the pool size. Values below 1 use the number of CPUs.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		p.workers = n
	}
}

// WithLogger sets the processor logger. The decoder logs under a "decoder" sub-logger.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMember selects the archive member to decode from zip and tar inputs.
func WithMember(member string) Option {
	return func(p *Processor) {
		p.member = member
	}
}

// NewProcessor creates a Processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		workers: runtime.NumCPU(),
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = runtime.NumCPU()
	}
	p.decoder = swatch.NewDecoder(swatch.WithLogger(p.logger.Named("decoder")))
	return p
}

// DecodeAll decodes paths with the given number of workers.
func DecodeAll(paths []string, workers int, logger hclog.Logger) Results {
	return NewProcessor(WithWorkers(workers), WithLogger(logger)).Run(paths, nil)
}

// Run decodes every path and calls handle, when set, for each file that decodes.
// One failing file does not stop the others.
func (p *Processor) Run(paths []string, handle Handler) Results {
	results := make(Results, len(paths))
	if len(paths) == 0 {
		return results
	}

	workers := min(p.workers, len(paths))
	panicHandler := func(v any) {
		p.logger.Error("task panicked", "panic", fmt.Sprint(v))
	}
	pool := pond.New(workers, queueCapacity, pond.MinWorkers(workers), pond.PanicHandler(panicHandler))

	p.logger.Debug("starting batch", "files", len(paths), "workers", workers)

	for i, path := range paths {
		pool.Submit(func() {
			results[i] = p.process(path, handle)
		})
	}

	pool.StopAndWait()

	if pool.FailedTasks() > 0 {
		for i := range results {
			if results[i].Collection == nil && results[i].Err == nil {
				results[i] = Result{Path: paths[i], Err: ErrTaskPanicked}
			}
		}
	}

	p.logger.Debug("batch finished", "files", len(paths), "failed", results.Failed())
	return results
}

func (p *Processor) process(path string, handle Handler) Result {
	logger := p.logger.With("path", path)

	c, err := p.decoder.DecodeFile(path, p.member)
	if err != nil {
		logger.Warn("failed to decode swatch file", "error", err)
		return Result{Path: path, Err: err}
	}
	logger.Debug("decoded swatch file", "swatches", c.Len())

	result := Result{Path: path, Collection: c}
	if handle == nil {
		return result
	}

	outputs, err := handle(path, c)
	result.Outputs = outputs
	if err != nil {
		logger.Warn("failed to process swatch file", "error", err)
		result.Err = err
	}
	return result
}
