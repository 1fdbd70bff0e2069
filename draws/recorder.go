package draws

import (
	"slices"
	"sync"
)

// Key identifies one field: logical time and sample identifier.
type Key struct {
	T      int64
	Sample int
}

// Recorder wraps a Source and keeps a copy of every field served.
// It is safe for concurrent use.
type Recorder struct {
	src Source

	mu        sync.Mutex
	fields    map[Key][]float64
	hits      map[Key]int
	calls     int
	conflicts []Key
}

// NewRecorder wraps src.
func NewRecorder(src Source) *Recorder {
	return &Recorder{
		src:    src,
		fields: make(map[Key][]float64),
		hits:   make(map[Key]int),
	}
}

// Fill implements Source, recording the field it forwards.
func (r *Recorder) Fill(t int64, sample int, dst []float64) {
	r.src.Fill(t, sample, dst)

	k := Key{T: t, Sample: sample}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.hits[k]++
	prev, ok := r.fields[k]
	if !ok {
		r.fields[k] = slices.Clone(dst)
		return
	}
	if !slices.Equal(prev, dst) {
		r.conflicts = append(r.conflicts, k)
	}
}

// Calls returns the total number of Fill calls.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Hits returns how many times k was requested.
func (r *Recorder) Hits(k Key) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[k]
}

// Field returns a copy of the first field served for k.
func (r *Recorder) Field(k Key) ([]float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fields[k]
	return slices.Clone(f), ok
}

// Keys returns every recorded key ordered by sample, then by time.
func (r *Recorder) Keys() []Key {
	r.mu.Lock()
	keys := make([]Key, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	r.mu.Unlock()

	slices.SortFunc(keys, func(a, b Key) int {
		if a.Sample != b.Sample {
			return a.Sample - b.Sample
		}
		switch {
		case a.T < b.T:
			return -1
		case a.T > b.T:
			return 1
		}
		return 0
	})

	return keys
}

// Conflicts lists the keys that were ever served a field different from
// their first one. A correct Source never produces any.
func (r *Recorder) Conflicts() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.conflicts)
}
