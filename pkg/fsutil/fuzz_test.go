package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/fmtsubst/pkg/fsutil"
)

func FuzzWriteAtomicRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte(sampleSource))
	f.Add([]byte("R\"EOF(\x00\xff)EOF\""))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.cc")
		ctx := context.Background()

		if err := fsutil.WriteAtomic(ctx, path, content, 0o644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("round trip mismatch")
		}

		changed, err := fsutil.CheckModified(ctx, info)
		if err != nil || changed {
			t.Errorf("CheckModified() = %v, %v; want false, nil", changed, err)
		}

		if _, err := os.Stat(path + fsutil.BackupSuffix); err == nil {
			t.Error("unexpected backup")
		}
	})
}
