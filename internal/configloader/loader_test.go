package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/fmtsubst/pkg/config"
	_ "github.com/yaklabco/fmtsubst/pkg/lint/rules" // Register rules
)

// isolated returns options that only consider the project directory.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.SeverityDefault != "" {
		t.Errorf("expected built-in severities, got severity_default %q", result.Config.SeverityDefault)
	}
	if len(result.Config.Extensions) != len(config.DefaultExtensions()) {
		t.Errorf("expected default extensions, got %v", result.Config.Extensions)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.yml"), `
severity_default: info
extensions: [".cc", ".h"]
rules:
  FS002:
    enabled: true
  FS001:
    options:
      target: "strings::Substitute"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.SeverityDefault != "info" {
		t.Errorf("expected severity_default info, got %q", cfg.SeverityDefault)
	}
	if strings.Join(cfg.Extensions, ",") != ".cc,.h" {
		t.Errorf("expected extensions [.cc .h], got %v", cfg.Extensions)
	}

	fs002, ok := cfg.Rules["FS002"]
	if !ok || fs002.Enabled == nil || !*fs002.Enabled {
		t.Error("expected FS002 to be enabled")
	}
	if got := cfg.Rules["FS001"].Options["target"]; got != "strings::Substitute" {
		t.Errorf("expected FS001 target option, got %v", got)
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigTOML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.toml"), `
include_vendor = true
dialect = "c++20"

[rules.FS001]
severity = "error"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !result.Config.IncludeVendor {
		t.Error("expected include_vendor from TOML")
	}
	fs001 := result.Config.Rules["FS001"]
	if fs001.Severity == nil || *fs001.Severity != "error" {
		t.Error("expected FS001 severity error")
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, `unknown key "dialect"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown key warning, got %v", result.Warnings)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.yml"), "severity_default: info\n")
	customPath := filepath.Join(tmpDir, "custom.yaml")
	writeFile(t, customPath, "severity_default: error\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.SeverityDefault != "error" {
		t.Errorf("expected explicit config to win, got %q", result.Config.SeverityDefault)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected project then explicit, got %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(opts.WorkingDir, "nope.yml")

	_, err := Load(context.Background(), opts)
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoad_MalformedConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".fmtsubst.yml")
	writeFile(t, path, "rules: [unclosed\n")

	_, err := Load(context.Background(), isolated(tmpDir))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.FilePath != path {
		t.Errorf("expected error to name %s, got %q", path, verr.FilePath)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.yml"), "ignore: [\"build/**\"]\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Jobs:   8,
		Fix:    true,
		Ignore: []string{"gen/**"},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if !result.Config.Fix {
		t.Error("expected fix true (CLI override)")
	}
	if strings.Join(result.Config.Ignore, ",") != "gen/**" {
		t.Errorf("expected CLI ignore to replace config ignore, got %v", result.Config.Ignore)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"FMTSUBST_JOBS":       "4",
		"FMTSUBST_EXTENSIONS": ".cc, .hpp",
		"FMTSUBST_FORMAT":     "json",
	}

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false
	opts.Getenv = func(key string) string { return env[key] }
	opts.CLIConfig = &config.Config{Format: config.FormatSARIF}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Jobs != 4 {
		t.Errorf("expected jobs 4 from env, got %d", result.Config.Jobs)
	}
	if strings.Join(result.Config.Extensions, ",") != ".cc,.hpp" {
		t.Errorf("expected extensions from env, got %v", result.Config.Extensions)
	}
	if result.Config.Format != config.FormatSARIF {
		t.Errorf("expected CLI format to beat env, got %q", result.Config.Format)
	}
}

func TestLoad_EnvironmentInvalid(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false
	opts.Getenv = func(key string) string {
		if key == "FMTSUBST_FIX" {
			return "maybe"
		}
		return ""
	}

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "FMTSUBST_FIX") {
		t.Fatalf("expected error naming FMTSUBST_FIX, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.yml"), "severity_default: loud\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil {
		t.Fatal("expected validation error for invalid severity")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.yml"), `
rules:
  fmt-format-dynamic:
    enabled: true
    severity: error
  substitute:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, hasName := result.Config.Rules["fmt-format-dynamic"]; hasName {
		t.Error("expected fmt-format-dynamic to be renamed to its ID")
	}

	fs002, ok := result.Config.Rules["FS002"]
	if !ok {
		t.Fatal("expected FS002 after normalization")
	}
	if fs002.Severity == nil || *fs002.Severity != "error" {
		t.Error("expected FS002 severity to be error")
	}

	fs001, ok := result.Config.Rules["FS001"]
	if !ok || fs001.Enabled == nil || *fs001.Enabled {
		t.Error("expected alias 'substitute' to disable FS001")
	}
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.yml"), `
rules:
  FS001:
    enabled: false
  fmt-format-substitute:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "FS001") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about duplicate rule, got warnings: %v", result.Warnings)
	}

	// The entry keyed by the rule ID wins over the name.
	fs001, ok := result.Config.Rules["FS001"]
	if !ok {
		t.Fatal("expected FS001 in config")
	}
	if fs001.Enabled == nil || *fs001.Enabled {
		t.Error("expected FS001 disabled by its ID entry")
	}
}

func TestLoader_WarnsUnknownRule(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtsubst.yml"), "rules:\n  XY001:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown rule "XY001"`) {
		t.Errorf("expected unknown rule warning, got %v", result.Warnings)
	}
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".fmtsubst.toml"), "")
	writeFile(t, filepath.Join(root, "plain", "src", "keep"), "")
	writeFile(t, filepath.Join(root, "repo", "src", "keep"), "")
	if err := os.Mkdir(filepath.Join(root, "repo", ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ctx := context.Background()

	got, err := FindProjectConfig(ctx, filepath.Join(root, "plain", "src"))
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != filepath.Join(root, ".fmtsubst.toml") {
		t.Errorf("expected upward search to find root config, got %q", got)
	}

	got, err = FindProjectConfig(ctx, filepath.Join(root, "repo", "src"))
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected search to stop at VCS root, got %q", got)
	}
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".fmtsubst.toml"), "")
	writeFile(t, filepath.Join(root, ".fmtsubst.yml"), "")

	got, err := FindProjectConfig(context.Background(), root)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if filepath.Base(got) != ".fmtsubst.yml" {
		t.Errorf("expected .fmtsubst.yml to be preferred, got %q", got)
	}
}
