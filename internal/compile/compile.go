// Package compile wires the pipeline together: scan the source tree,
// resolve every chosen record into flat geometry, and build the output
// table. Any failure during discovery or resolution fails the whole
// build; the output is an all-or-nothing static table.
package compile

import (
	"fmt"

	"iconc"
	"iconc/internal/emit"
	"iconc/internal/parallel"
	"iconc/internal/scan"
	"iconc/internal/svg"
)

// Options configures one compiler run.
type Options struct {
	// Source is the root of the icon source tree.
	Source string

	// Variant selects a single variant to compile. Empty means all
	// discovered variants.
	Variant string

	// Workers caps the number of concurrent resolvers. Zero or negative
	// uses GOMAXPROCS.
	Workers int
}

// Run executes the pipeline and returns the validated table. Icons are
// resolved concurrently, but results are merged by record position, so
// the table never depends on completion order.
func Run(opts Options) (*emit.Table, error) {
	records, err := scan.Scan(opts.Source)
	if err != nil {
		return nil, err
	}
	if opts.Variant != "" {
		filtered := records[:0]
		for _, rec := range records {
			if rec.Key.Variant == opts.Variant {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("compile: no icon sources found under %s", opts.Source)
	}
	iconc.Logger().Debug("resolving icons", "count", len(records))

	sources := make([]emit.Source, len(records))
	errs := make([]error, len(records))
	work := make([]func(), len(records))
	for i, rec := range records {
		i, rec := i, rec
		work[i] = func() {
			sources[i], errs[i] = resolveRecord(rec)
		}
	}

	pool := parallel.NewPool(opts.Workers)
	pool.ExecuteAll(work)
	pool.Close()

	// Report the first failure in record order, not completion order.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return emit.Build(sources)
}

// resolveRecord flattens one source file and cross-checks the document
// size against the size parsed from the filename.
func resolveRecord(rec scan.Record) (emit.Source, error) {
	res, err := svg.ResolveFile(rec.Path)
	if err != nil {
		return emit.Source{}, err
	}
	if res.Size != float64(rec.Size) {
		return emit.Source{}, fmt.Errorf("compile: %s: document size %g does not match filename size %d",
			rec.Path, res.Size, rec.Size)
	}
	return emit.Source{Key: rec.Key, Size: res.Size, Shapes: res.Shapes}, nil
}
