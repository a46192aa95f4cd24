package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtsubst/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("replaces content and keeps mode", func(t *testing.T) {
		t.Parallel()

		path := writeSample(t, 0o600)
		want := "auto s = absl::Substitute(\"$0\", x);\n"

		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte(want), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.cc")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("int x;\n"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		path := writeSample(t, 0o644)
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0o644))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "a.cc")
		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0o644))
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		path := writeSample(t, 0o644)
		require.ErrorIs(t, fsutil.WriteAtomic(cancelled, path, []byte("x"), 0o644), context.Canceled)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, sampleSource, string(got))
	})
}
