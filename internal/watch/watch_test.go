package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	assert.True(t, Relevant("src/App.cs"))
	assert.True(t, Relevant("src/Legacy.CS"))
	assert.True(t, Relevant("/p/cs2ts.toml"))
	assert.False(t, Relevant("out/App.ts"))
	assert.False(t, Relevant("README.md"))
}

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) add(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func TestRunReportsSourceChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))

	w, err := New(root, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var rec recorder
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rec.add) }()

	target := filepath.Join(root, "src", "App.cs")
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "Gen.cs"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("class App {}"), 0o644))

	require.Eventually(t, func() bool {
		return len(rec.all()) > 0
	}, 5*time.Second, 10*time.Millisecond)
	for _, p := range rec.all() {
		assert.Equal(t, target, p)
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunWatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var rec recorder
	go func() { _ = w.Run(ctx, rec.add) }()

	dir := filepath.Join(root, "feature")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	target := filepath.Join(dir, "New.cs")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(target, []byte("class New {}"), 0o644)
		for _, p := range rec.all() {
			if p == target {
				return true
			}
		}
		return false
	}, 5*time.Second, 50*time.Millisecond)
}
