package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:       filepath.Join(dir, "cpu.pprof"),
		Mem:       filepath.Join(dir, "mem.pprof"),
		ExecTrace: filepath.Join(dir, "exec.trace"),
	}
	require.True(t, cfg.Enabled())
	s, err := Start(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{cfg.CPU, cfg.Mem, cfg.ExecTrace} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestStartFailureLeavesNothingRunning(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(Config{CPU: filepath.Join(dir, "cpu.pprof"), ExecTrace: filepath.Join(dir, "missing", "exec.trace")})
	require.Error(t, err)

	s, err := Start(Config{CPU: filepath.Join(dir, "again.pprof")})
	require.NoError(t, err, "cpu profiling was stopped after the failed start")
	require.NoError(t, s.Stop())

	var nilSession *Session
	assert.NoError(t, nilSession.Stop())
	assert.False(t, Config{}.Enabled())
}
