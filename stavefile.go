//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binName = "fmtsubst"
	binPath = "bin/" + binName
	mainPkg = "./cmd/" + binName
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"i":     Install,
	"fmt":   Lint.Fmt,
	"bs":    Bench.Subst,
	"gold":  Test.Golden,
	"fuzz":  Test.Fuzz,
	"smoke": Smoke,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/fmtsubst with version info when sources changed.
func Build() error {
	stale, err := target.Dir(binPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binName+"...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, mainPkg)
}

// Check formats, lints, and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Smoke builds the binary and converts a few format strings with it.
func Smoke() error {
	st.Deps(Build)
	cases := map[string]string{
		"{} of {}": "$0 of $1",
		"{1}{0}":   "$1$0",
		"{{}} {}":  "{} $0",
		"100% {}":  "100% $0",
	}
	for in, want := range cases {
		got, err := sh.Output(binPath, "convert", "--text", "--", in)
		if err != nil {
			return fmt.Errorf("convert %q: %w", in, err)
		}
		if got != want {
			return fmt.Errorf("convert %q = %s, want %s", in, got, want)
		}
	}
	fmt.Println("✓ convert smoke test passed")
	return nil
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	fmt.Println("Installing", binName+"...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes the binary go install placed.
func Uninstall() error {
	path, err := installedBinary()
	if err != nil {
		return err
	}
	switch err := os.Remove(path); {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println(binName, "is not installed")
	case err != nil:
		return fmt.Errorf("remove binary: %w", err)
	default:
		fmt.Println("Removed", path)
	}
	return nil
}

// Deps downloads and tidies modules.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage runs the tests and opens an HTML coverage report.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// Default runs all tests with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose is Default with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Golden rewrites the rule golden archives under pkg/lint/rules/testdata.
func (Test) Golden() error {
	return sh.RunV("go", "test", "./pkg/lint/rules/", "-run", "TestGolden", "-update")
}

// Fuzz runs every fuzz target for FUZZ_TIME (default 30s) each.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	targets := []struct{ pkg, name string }{
		{"./pkg/subst/", "FuzzConvert"},
		{"./pkg/fix/", "FuzzApplyEdits"},
		{"./pkg/fix/", "FuzzGenerateDiff"},
		{"./pkg/fsutil/", "FuzzWriteAtomicRoundTrip"},
	}
	for _, t := range targets {
		fmt.Printf("Fuzzing %s %s for %s...\n", t.pkg, t.name, fuzzTime)
		if err := sh.RunV("go", "test", t.pkg, "-run", "^$", "-fuzz", "^"+t.name+"$", "-fuzztime", fuzzTime); err != nil {
			return err
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change any file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every check CI runs.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Smoke,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before, err := readAll(files)
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readAll(files)
	if err != nil {
		return err
	}
	for i, name := range files {
		if !bytes.Equal(before[i], after[i]) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	return nil
}

// Cross builds for every release platform.
func (CI) Cross() error {
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64", "freebsd/arm64",
		"openbsd/amd64", "netbsd/amd64",
	}
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs every benchmark once.
func (Bench) Default() error {
	return sh.RunV("go", "tool", "gotestsum", "-f", "pkgname-and-test-fails", "--",
		"-run", "^$", "-bench=.", "-benchmem", "./...")
}

// Subst runs the transcoder and rule benchmarks BENCH_COUNT times (default 5).
func (Bench) Subst() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench=.", "-benchmem",
		"-count", cmp.Or(os.Getenv("BENCH_COUNT"), "5"),
		"./pkg/subst/", "./pkg/lint/rules/")
}

func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...")
}

func readAll(paths []string) ([][]byte, error) {
	out := make([][]byte, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags stamps main.version, main.commit and main.date.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}

// installedBinary returns where go install puts the binary.
func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binName), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binName), nil
}
