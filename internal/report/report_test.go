package report

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cftp/cftp"
	"github.com/katalvlaran/cftp/ising"
	"github.com/katalvlaran/cftp/lattice"
)

var testRun = Run{Seed: 9, Source: "chacha20", Backend: "serial"}

// fixture builds a three-request result: ids 0 and 2 converged, id 1 did not.
func fixture(t *testing.T) *cftp.Result {
	t.Helper()
	up, err := lattice.NewConfig(2, lattice.High)
	require.NoError(t, err)
	down, err := lattice.NewConfig(2, lattice.Low)
	require.NoError(t, err)

	return &cftp.Result{
		Request: cftp.Request{K: 2, Beta: 0.3, N: 3, MaxTime: 8},
		Outcomes: []cftp.Outcome{
			{Index: 0, Converged: true, Time: 2, Config: &up},
			{Index: 1},
			{Index: 2, Converged: true, Time: 4, Config: &down},
		},
		Rounds: []cftp.RoundStats{
			{T: 1, Active: 3, Coalesced: 0, Duration: time.Millisecond},
			{T: 2, Active: 3, Coalesced: 1, Duration: 2 * time.Millisecond},
			{T: 4, Active: 2, Coalesced: 1, Duration: 4 * time.Millisecond},
			{T: 8, Active: 1, Coalesced: 0, Duration: 8 * time.Millisecond},
		},
		Elapsed: 15 * time.Millisecond,
	}
}

//----------------------------------------------------------------------------//

func TestFromSample(t *testing.T) {
	r := FromSample(fixture(t), testRun, true)

	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, MethodSample, r.Method)
	assert.Equal(t, Params{K: 2, Beta: 0.3, N: 3, MaxTime: 8, Run: testRun}, r.Params)

	assert.Equal(t, 3, r.Summary.Requested)
	assert.Equal(t, 2, r.Summary.Converged)
	assert.Equal(t, 1, r.Summary.NonConverged)
	assert.Equal(t, 3.0, r.Summary.MeanTime)
	assert.Equal(t, 4, r.Summary.MaxTime)
	assert.Equal(t, 0.0, r.Summary.MagnetizationMean)
	assert.Equal(t, 1.0, r.Summary.MagnetizationStd)
	assert.Equal(t, 4, r.Summary.Rounds)
	assert.Equal(t, 1.0, r.Summary.LargestCluster)

	assert.Equal(t, []int{2, 4}, r.Times)
	assert.Equal(t, []int{1}, r.NonConverged)
	require.Len(t, r.Rounds, 4)
	assert.Equal(t, Round{T: 2, Active: 3, Coalesced: 1, DurationSeconds: 0.002}, r.Rounds[1])
	assert.Equal(t, [][][]int8{{{1, 1}, {1, 1}}, {{-1, -1}, {-1, -1}}}, r.Samples)

	assert.Nil(t, FromSample(fixture(t), testRun, false).Samples)
}

func TestFromForward(t *testing.T) {
	batch, err := lattice.NewBatch(2, 3, lattice.High)
	require.NoError(t, err)
	batch.At(1).Fill(lattice.Low)
	res := &cftp.ForwardResult{
		Request: cftp.ForwardRequest{K: 3, Beta: 0.2, N: 2, BurnIn: 50},
		Samples: batch,
	}

	r := FromForward(res, testRun, true)
	assert.Equal(t, MethodForward, r.Method)
	assert.Equal(t, 50, r.Params.BurnIn)
	assert.Equal(t, 2, r.Summary.Converged)
	assert.Equal(t, 0.0, r.Summary.MagnetizationMean)
	assert.Equal(t, 1.0, r.Summary.MagnetizationStd)
	assert.Equal(t, 1.0, r.Summary.LargestCluster)
	require.Len(t, r.Samples, 2)
	assert.Equal(t, []int8{-1, -1, -1}, r.Samples[1][2])
}

func TestFromExact(t *testing.T) {
	law, err := ising.ExactLaw(2, 0.4)
	require.NoError(t, err)

	r := FromExact(law)
	assert.Equal(t, MethodExact, r.Method)
	assert.Equal(t, 2, r.Params.K)
	assert.Equal(t, law.AbsMagnetization, r.Summary.AbsMagnetization)
	assert.Equal(t, law.Aligned, r.Summary.Aligned)
	assert.Equal(t, law.SiteHigh, r.SiteHigh)
}

func TestWriteAndUnmarshal(t *testing.T) {
	want := FromSample(fixture(t), testRun, true)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want))
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), `"non_converged":[1]`)

	got, err := Unmarshal(bytes.TrimSpace(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

//----------------------------------------------------------------------------//

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveListGet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	first := FromSample(fixture(t), testRun, false)
	law, err := ising.ExactLaw(2, 0.1)
	require.NoError(t, err)
	second := FromExact(law)

	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Equal(t, Entry{
		ID: first.ID, Method: MethodSample, CreatedAt: first.CreatedAt,
		K: 2, Beta: 0.3, N: 3, Converged: 2, NonConverged: 1,
	}, all[1])

	one, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, second.ID, one[0].ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	r := FromSample(fixture(t), testRun, false)
	require.NoError(t, s.Save(ctx, r))
	assert.Error(t, s.Save(ctx, r))
}

func TestStore_ReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	r := FromSample(fixture(t), testRun, false)
	require.NoError(t, s.Save(ctx, r))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}
