package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/langdetect"
)

// Discover finds C++ source files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Paths named explicitly are always considered, even when they lie in a
// hidden or vendored directory; exclude globs still apply to them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		if w.matchesFile(absPath) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)

	logging.FromContext(ctx).Debug("discovery complete",
		logging.FieldWorkingDir, workDir,
		logging.FieldFilesDiscovered, len(w.files),
	)

	return w.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker accumulates discovered files across roots.
type walker struct {
	ctx        context.Context //nolint:containedctx // scoped to one Discover call
	workDir    string
	extensions []string
	opts       Options
	files      []string
	seen       map[string]struct{}
	visited    map[string]struct{} // resolved directories, guards symlink cycles
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// walk recursively walks a directory and records matching source files.
func (w *walker) walk(root string) error {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := w.visited[resolved]; ok {
			return nil
		}
		w.visited[resolved] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				logging.FromContext(w.ctx).Debug("skipping unreadable path",
					logging.FieldPath, path,
					logging.FieldError, walkErr,
				)
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if reason := w.skipDirReason(path, entry.Name()); reason != "" {
				logging.FromContext(w.ctx).Debug("skipping directory",
					logging.FieldPath, path,
					logging.FieldReason, reason,
				)
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path)
		}

		if w.matchesFile(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// symlink handles a symlink found during a walk. File links are treated as
// regular files; directory links are walked only with FollowSymlinks.
func (w *walker) symlink(path string) error {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return nil //nolint:nilerr // inaccessible targets are skipped
	}

	if !info.IsDir() {
		if w.matchesFile(path) {
			w.add(path)
		}
		return nil
	}

	if !w.opts.FollowSymlinks || w.skipDirReason(path, filepath.Base(path)) != "" {
		return nil
	}
	// Walk the target; WalkDir does not descend through a symlinked root.
	return w.walk(realPath)
}

// skipDirReason reports why a directory below a walk root is pruned, or ""
// when it should be walked.
func (w *walker) skipDirReason(path, name string) string {
	switch {
	case strings.HasPrefix(name, "."):
		return "hidden"
	case matchesAny(w.rel(path), w.opts.ExcludeGlobs):
		return "excluded"
	case !w.opts.IncludeVendor && langdetect.IsVendor(w.rel(path)+"/"):
		return "vendor"
	default:
		return ""
	}
}

// rel returns path relative to the working directory, slash-separated.
func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// matchesFile checks if a file path matches the inclusion criteria.
func (w *walker) matchesFile(path string) bool {
	if !hasMatchingExtension(path, w.extensions) {
		return false
	}

	relPath := w.rel(path)
	if matchesAny(relPath, w.opts.ExcludeGlobs) {
		return false
	}
	if len(w.opts.IncludeGlobs) > 0 && !matchesAny(relPath, w.opts.IncludeGlobs) {
		return false
	}
	return true
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// matchesAny reports whether relPath matches one of patterns.
func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(relPath, pattern)
	})
}

// matchGlob matches a slash-separated relative path against a glob pattern.
// A pattern without a slash matches the final path element ("*.pb.h",
// "third_party"). Otherwise it is matched segment by segment, where "**"
// stands for zero or more segments ("src/**/gen/*.cc", "build/**").
func matchGlob(relPath, pattern string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	relPath = filepath.ToSlash(relPath)
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") && pattern != "**" {
		matched, err := path.Match(pattern, path.Base(relPath))
		return err == nil && matched
	}

	pattern = strings.TrimSuffix(pattern, "/")
	return matchSegments(strings.Split(relPath, "/"), strings.Split(pattern, "/"))
}

func matchSegments(segs, pats []string) bool {
	for len(pats) > 0 {
		if pats[0] == "**" {
			rest := pats[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		matched, err := path.Match(pats[0], segs[0])
		if err != nil || !matched {
			return false
		}
		segs, pats = segs[1:], pats[1:]
	}
	return len(segs) == 0
}
