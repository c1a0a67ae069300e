package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	w := New("/tmp/papers")

	require.NotNil(t, w)
	assert.Equal(t, "/tmp/papers", w.rootPath)
	assert.Equal(t, DefaultSettle, w.settle)
}

func TestWatcher_SetSettle(t *testing.T) {
	w := New("/tmp")

	w.SetSettle(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, w.settle)

	w.SetSettle(0)
	assert.Equal(t, 10*time.Millisecond, w.settle, "non-positive values are ignored")
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports new pdf once writes settle", func(t *testing.T) {
		tempDir := t.TempDir()

		w := New(tempDir)
		w.SetSettle(20 * time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		paths, err := w.Watch(ctx)
		require.NoError(t, err)
		require.NotNil(t, paths)

		target := filepath.Join(tempDir, "paper.pdf")
		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(target, []byte("%PDF-1.4"), 0o644)
		}()

		select {
		case path := <-paths:
			assert.Equal(t, target, path)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for pdf")
		}

		cancel()
		_ = w.Close()
	})

	t.Run("ignores non-pdf files", func(t *testing.T) {
		tempDir := t.TempDir()

		w := New(tempDir)
		w.SetSettle(10 * time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		paths, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(30 * time.Millisecond)
			_ = os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0o644)
		}()

		select {
		case path := <-paths:
			t.Fatalf("unexpected path %s", path)
		case <-time.After(200 * time.Millisecond):
		}

		cancel()
		_ = w.Close()
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		w := New("/non/existent/path")

		paths, err := w.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, paths)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("returns error for a file path", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "paper.pdf")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		_, err := New(file).Watch(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		w := New(t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())

		paths, err := w.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-paths:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}

		_ = w.Close()
	})

	t.Run("returns error when watcher is closed", func(t *testing.T) {
		w := New(t.TempDir())
		require.NoError(t, w.Close())

		paths, err := w.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, paths)
		assert.Contains(t, err.Error(), "closed")
	})
}

func TestWatcher_Close(t *testing.T) {
	w := New("/tmp/test")

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{".hidden.pdf", true},
		{"path/to/.hidden.pdf", true},
		{"/path/.cache/paper.pdf", true},
		{"paper.pdf", false},
		{"/root/papers/paper.pdf", false},
		{".", false},
		{"..", false},
		{"path/../paper.pdf", false},
		{"", false},
		{"/", false},
		{"paper.v2.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isHidden(tt.path))
		})
	}
}

func TestHandleFsEvent(t *testing.T) {
	tempDir := t.TempDir()
	pdf := filepath.Join(tempDir, "paper.PDF")
	require.NoError(t, os.WriteFile(pdf, []byte("x"), 0o644))
	txt := filepath.Join(tempDir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	hidden := filepath.Join(tempDir, ".draft.pdf")
	require.NoError(t, os.WriteFile(hidden, []byte("x"), 0o644))
	dir := filepath.Join(tempDir, "folder.pdf")
	require.NoError(t, os.Mkdir(dir, 0o755))

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want string
	}{
		{"create pdf", pdf, fsnotify.Create, pdf},
		{"write pdf", pdf, fsnotify.Write, pdf},
		{"chmod pdf is ignored", pdf, fsnotify.Chmod, ""},
		{"remove is ignored", filepath.Join(tempDir, "gone.pdf"), fsnotify.Remove, ""},
		{"non-pdf is ignored", txt, fsnotify.Create, ""},
		{"hidden pdf is ignored", hidden, fsnotify.Create, ""},
		{"directory is ignored", dir, fsnotify.Create, ""},
		{"missing file is ignored", filepath.Join(tempDir, "missing.pdf"), fsnotify.Create, ""},
	}

	w := New(tempDir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.want, got)
		})
	}
}
