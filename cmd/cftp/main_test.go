package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cftp/backend"
	"github.com/katalvlaran/cftp/cftp"
	"github.com/katalvlaran/cftp/internal/config"
	"github.com/katalvlaran/cftp/internal/report"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, out string) report.Report {
	t.Helper()
	rep, err := report.Unmarshal([]byte(strings.TrimSpace(out)))
	require.NoError(t, err)
	return rep
}

//----------------------------------------------------------------------------//

func TestSample_Converges(t *testing.T) {
	out, _, err := run(t, "sample", "-k", "2", "--beta", "0.1", "-n", "6",
		"--max-time", "4096", "--seed", "5", "--emit-samples", "--strict")
	require.NoError(t, err)

	rep := decode(t, out)
	assert.Equal(t, report.MethodSample, rep.Method)
	assert.Equal(t, 2, rep.Params.K)
	assert.Equal(t, uint64(5), rep.Params.Seed)
	assert.Equal(t, 6, rep.Summary.Requested)
	assert.Equal(t, 6, rep.Summary.Converged)
	assert.Len(t, rep.Samples, 6)
	assert.Len(t, rep.Times, 6)
}

func TestSample_Deterministic(t *testing.T) {
	args := []string{"sample", "-k", "3", "--beta", "0.2", "-n", "4", "--max-time", "4096", "--emit-samples"}
	out1, _, err := run(t, args...)
	require.NoError(t, err)
	out2, _, err := run(t, append(args, "--backend", "parallel", "--workers", "3")...)
	require.NoError(t, err)

	a, b := decode(t, out1), decode(t, out2)
	assert.Equal(t, a.Times, b.Times)
	assert.Equal(t, a.Samples, b.Samples)
	assert.Equal(t, backend.NameParallel, b.Params.Backend)
}

func TestSample_NonConverged(t *testing.T) {
	args := []string{"sample", "-k", "8", "--beta", "0.4", "-n", "2", "--max-time", "1"}

	out, _, err := run(t, args...)
	require.NoError(t, err)
	rep := decode(t, out)
	assert.Equal(t, 2, rep.Summary.NonConverged)
	assert.Equal(t, []int{0, 1}, rep.NonConverged)

	_, _, err = run(t, append(args, "--strict")...)
	require.ErrorIs(t, err, cftp.ErrNotConverged)
	assert.Equal(t, 2, exitCode(err))
}

func TestSample_Rejects(t *testing.T) {
	_, _, err := run(t, "sample", "--backend", "gpu", "-n", "1")
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	assert.Equal(t, 1, exitCode(err))

	_, _, err = run(t, "sample", "--beta=-1")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = run(t, "sample", "--source", "lcg")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSample_ConfigFileAndOutputs(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	store := filepath.Join(dir, "runs.db")
	metrics := filepath.Join(dir, "cftp.prom")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
lattice: 2
beta: 0.1
samples: 3
max_time: 4096
source: blake2b
log_level: debug
`), 0o600))

	out, stderr, err := run(t, "sample", "--config", cfgPath, "-n", "2",
		"--store", store, "--metrics-out", metrics)
	require.NoError(t, err)
	rep := decode(t, out)
	assert.Equal(t, 2, rep.Params.N)
	assert.Equal(t, "blake2b", rep.Params.Source)
	assert.Contains(t, stderr, "round done")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "cftp_rounds_total")

	list, _, err := run(t, "runs", "ls", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, list, rep.ID)

	shown, _, err := run(t, "runs", "show", rep.ID, "--store", store)
	require.NoError(t, err)
	assert.Equal(t, rep, decode(t, shown))
}

//----------------------------------------------------------------------------//

func TestForward(t *testing.T) {
	out, _, err := run(t, "forward", "-k", "4", "--beta", "0.2", "-n", "3", "--burn-in", "10")
	require.NoError(t, err)
	rep := decode(t, out)
	assert.Equal(t, report.MethodForward, rep.Method)
	assert.Equal(t, 10, rep.Params.BurnIn)
	assert.Equal(t, 3, rep.Summary.Requested)
}

func TestExact(t *testing.T) {
	out, _, err := run(t, "exact", "-k", "2", "--beta", "0.3")
	require.NoError(t, err)
	rep := decode(t, out)
	assert.Equal(t, report.MethodExact, rep.Method)
	require.Len(t, rep.SiteHigh, 4)
	for _, p := range rep.SiteHigh {
		assert.InDelta(t, 0.5, p, 1e-12)
	}

	_, _, err = run(t, "exact", "-k", "5")
	assert.Error(t, err)
}

func TestRuns_NoStore(t *testing.T) {
	_, _, err := run(t, "runs", "ls")
	assert.ErrorIs(t, err, errNoStore)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cftp version dev\n", out)
}
