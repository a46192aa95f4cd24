package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yaklabco/fmtsubst/pkg/runner"
)

// discoverRel runs Discover and returns the results relative to dir,
// slash-separated.
func discoverRel(t *testing.T, dir string, opts runner.Options) []string {
	t.Helper()

	opts.WorkingDir = dir
	discovered, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	rel := make([]string, 0, len(discovered))
	for _, path := range discovered {
		if !filepath.IsAbs(path) {
			t.Errorf("path not absolute: %s", path)
		}
		r, err := filepath.Rel(dir, path)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func makeTree(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		writeFile(t, dir, name, cleanSource)
	}
	return dir
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "main.cc", "other.cc")

	got := discoverRel(t, dir, runner.Options{Paths: []string{"main.cc"}})
	if !reflect.DeepEqual(got, []string{"main.cc"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := makeTree(t,
		"src/main.cc",
		"src/util.hpp",
		"src/legacy.h",
		"src/notes.txt",
		"src/script.py",
		"include/api.HXX",
		"README.md",
	)

	got := discoverRel(t, dir, runner.Options{})
	want := []string{"include/api.HXX", "src/legacy.h", "src/main.cc", "src/util.hpp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "a.cc", "b.tcc", "c.h")

	got := discoverRel(t, dir, runner.Options{Extensions: []string{".tcc"}})
	if !reflect.DeepEqual(got, []string{"b.tcc"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := makeTree(t,
		"src/main.cc",
		"src/gen/msg.cc",
		"build/out.cc",
		"proto/msg.pb.h",
		"tests/deep/gen/x.cc",
	)

	tests := []struct {
		name     string
		excludes []string
		want     []string
	}{
		{
			name:     "directory prefix",
			excludes: []string{"build/**"},
			want:     []string{"proto/msg.pb.h", "src/gen/msg.cc", "src/main.cc", "tests/deep/gen/x.cc"},
		},
		{
			name:     "basename pattern",
			excludes: []string{"*.pb.h"},
			want:     []string{"build/out.cc", "src/gen/msg.cc", "src/main.cc", "tests/deep/gen/x.cc"},
		},
		{
			name:     "any depth",
			excludes: []string{"**/gen/**"},
			want:     []string{"build/out.cc", "proto/msg.pb.h", "src/main.cc"},
		},
		{
			name:     "bare directory name",
			excludes: []string{"build", "proto"},
			want:     []string{"src/gen/msg.cc", "src/main.cc", "tests/deep/gen/x.cc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := discoverRel(t, dir, runner.Options{ExcludeGlobs: tt.excludes})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "src/a.cc", "src/sub/b.cc", "lib/c.cc")

	got := discoverRel(t, dir, runner.Options{IncludeGlobs: []string{"src/**/*.cc"}})
	want := []string{"src/a.cc", "src/sub/b.cc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "visible.cc", ".hidden.cc", ".cache/x.cc", "src/.git/y.cc")

	got := discoverRel(t, dir, runner.Options{})
	if !reflect.DeepEqual(got, []string{"visible.cc"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_Vendor(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "src/main.cc", "third_party/fmt/format.cc", "vendor/lib/a.cc")

	got := discoverRel(t, dir, runner.Options{})
	if !reflect.DeepEqual(got, []string{"src/main.cc"}) {
		t.Errorf("default: got %v", got)
	}

	got = discoverRel(t, dir, runner.Options{IncludeVendor: true})
	want := []string{"src/main.cc", "third_party/fmt/format.cc", "vendor/lib/a.cc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IncludeVendor: got %v, want %v", got, want)
	}

	// Naming a vendored file explicitly still lints it.
	got = discoverRel(t, dir, runner.Options{Paths: []string{"vendor/lib/a.cc"}})
	if !reflect.DeepEqual(got, []string{"vendor/lib/a.cc"}) {
		t.Errorf("explicit: got %v", got)
	}
}

func TestDiscover_DeterministicOrdering(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "z.cc", "a.cc", "m/b.cc", "m/a.cc")

	first := discoverRel(t, dir, runner.Options{})
	for range 5 {
		if got := discoverRel(t, dir, runner.Options{}); !reflect.DeepEqual(got, first) {
			t.Fatalf("order changed: %v vs %v", got, first)
		}
	}
	want := []string{"a.cc", "m/a.cc", "m/b.cc", "z.cc"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("got %v, want %v", first, want)
	}
}

func TestDiscover_MultiplePathsDeduplicated(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "src/a.cc", "src/b.cc", "lib/c.cc")

	got := discoverRel(t, dir, runner.Options{Paths: []string{"src", "src/a.cc", "lib", "."}})
	want := []string{"lib/c.cc", "src/a.cc", "src/b.cc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "a.cc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "real.cc")
	if err := os.Symlink(filepath.Join(dir, "real.cc"), filepath.Join(dir, "link.cc")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "missing.cc"), filepath.Join(dir, "broken.cc")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := discoverRel(t, dir, runner.Options{})
	if !reflect.DeepEqual(got, []string{"link.cc", "real.cc"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "real/doc.cc")
	external := makeTree(t, "external.cc")
	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	// A link back to the root must not loop.
	if err := os.Symlink(dir, filepath.Join(dir, "real", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := discoverRel(t, dir, runner.Options{})
	if !reflect.DeepEqual(got, []string{"real/doc.cc"}) {
		t.Errorf("without FollowSymlinks: got %v", got)
	}

	discovered, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(discovered) != 2 {
		t.Fatalf("with FollowSymlinks: got %v", discovered)
	}
	var names []string
	for _, path := range discovered {
		names = append(names, filepath.Base(path))
	}
	if !reflect.DeepEqual(names, []string{"external.cc", "doc.cc"}) &&
		!reflect.DeepEqual(names, []string{"doc.cc", "external.cc"}) {
		t.Errorf("with FollowSymlinks: got %v", discovered)
	}
}
