package backend

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Backend executes shard functions over a batch of n independent items.
type Backend interface {
	// Name identifies the backend in logs and reports.
	Name() string
	// Run calls fn over disjoint [lo, hi) ranges covering [0, n) and returns
	// the first error. It returns ctx.Err() if ctx is done before starting.
	Run(ctx context.Context, n int, fn func(lo, hi int) error) error
}

// Names of the built-in backends.
const (
	NameSerial   = "serial"
	NameParallel = "parallel"
)

// Serial runs the whole batch as a single shard on the calling goroutine.
type Serial struct{}

// Name implements Backend.
func (Serial) Name() string { return NameSerial }

// Run implements Backend.
func (Serial) Run(ctx context.Context, n int, fn func(lo, hi int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	return fn(0, n)
}

// Parallel splits the batch into contiguous shards run by at most Workers goroutines.
type Parallel struct {
	// Workers bounds concurrency; values < 1 mean GOMAXPROCS.
	Workers int
	// MinShard is the smallest shard worth a goroutine; values < 1 mean 1.
	MinShard int
}

// NewParallel returns a Parallel backend with the given worker bound.
func NewParallel(workers int) *Parallel {
	return &Parallel{Workers: workers}
}

// Name implements Backend.
func (p *Parallel) Name() string { return NameParallel }

// Run implements Backend.
func (p *Parallel) Run(ctx context.Context, n int, fn func(lo, hi int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}

	workers := p.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	minShard := p.MinShard
	if minShard < 1 {
		minShard = 1
	}
	shards := workers
	if n/minShard < shards {
		shards = max(1, n/minShard)
	}
	if shards == 1 {
		return fn(0, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for s := 0; s < shards; s++ {
		lo, hi := Shard(n, shards, s)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(lo, hi)
		})
	}

	return g.Wait()
}

// Shard returns the s-th of shards contiguous ranges over [0, n); sizes differ by at most one.
func Shard(n, shards, s int) (lo, hi int) {
	base, rem := n/shards, n%shards
	lo = s*base + min(s, rem)
	hi = lo + base
	if s < rem {
		hi++
	}
	return lo, hi
}

// Constructor builds a backend for a worker bound.
type Constructor func(workers int) Backend

var (
	regMu    sync.RWMutex
	registry = map[string]Constructor{
		NameSerial:   func(int) Backend { return Serial{} },
		NameParallel: func(w int) Backend { return NewParallel(w) },
	}
)

// Register makes a backend available to Lookup under name. Registering an
// existing name replaces it. Panics on empty name or nil constructor.
func Register(name string, ctor Constructor) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		panic("backend: Register(\"\")")
	}
	if ctor == nil {
		panic("backend: Register(nil)")
	}
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = ctor
}

// Lookup returns the backend registered under name. An empty name selects Serial.
func Lookup(name string, workers int) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = NameSerial
	}
	regMu.RLock()
	ctor, ok := registry[key]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("Lookup: %q (available: %s): %w", name, strings.Join(Names(), ", "), ErrUnavailable)
	}
	return ctor(workers), nil
}

// Names lists registered backends in ascending order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
