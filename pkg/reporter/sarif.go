package reporter

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifToolURI   = "https://github.com/yaklabco/fmtsubst"
	sarifBaseID    = "SRCROOT"
)

// SARIFOutput is a SARIF 2.1.0 log with a single run.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool struct {
		Driver SARIFDriver `json:"driver"`
	} `json:"tool"`
	Results            []SARIFResult            `json:"results"`
	ColumnKind         string                   `json:"columnKind"`
	OriginalURIBaseIDs map[string]SARIFArtifact `json:"originalUriBaseIds,omitempty"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription SARIFText        `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties       *SARIFRuleTags   `json:"properties,omitempty"`
}

type SARIFRuleConfig struct {
	Level string `json:"level"`
}

type SARIFRuleTags struct {
	Tags []string `json:"tags,omitempty"`
}

// SARIFText is the {"text": ...} object SARIF uses for messages and content.
type SARIFText struct {
	Text string `json:"text"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifact `json:"artifactLocation"`
	Region           SARIFRegion   `json:"region"`
}

type SARIFArtifact struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// SARIFRegion locates a diagnostic by 1-based line and column.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

type SARIFFix struct {
	Description     SARIFText             `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifact      `json:"artifactLocation"`
	Replacements     []SARIFReplacement `json:"replacements"`
}

type SARIFReplacement struct {
	DeletedRegion   SARIFByteRegion `json:"deletedRegion"`
	InsertedContent *SARIFText      `json:"insertedContent,omitempty"`
}

// SARIFByteRegion always emits both fields: offset 0 and empty deletions
// are meaningful.
type SARIFByteRegion struct {
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

// SARIFReporter writes results as a SARIF log for code-scanning tools.
type SARIFReporter struct {
	opts Options
}

// sarifRules collects rule descriptors for one log, indexed by rule ID.
type sarifRules struct {
	list  []SARIFRule
	index map[string]int
}

func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report implements Reporter. It returns the number of results written.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	out := r.build(result)
	enc := json.NewEncoder(r.opts.Writer)
	enc.SetEscapeHTML(false)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(out.Runs[0].Results), nil
}

func (r *SARIFReporter) build(result *runner.Result) *SARIFOutput {
	rules := &sarifRules{list: []SARIFRule{}, index: map[string]int{}}
	infos := slices.SortedFunc(slices.Values(r.opts.ruleInfos()), func(a, b config.RuleInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	for _, info := range infos {
		rules.add(info.ID, info.Name, info.Description, info.Severity, info.Tags)
	}

	run := SARIFRun{Results: []SARIFResult{}, ColumnKind: "unicodeCodePoints"}
	if r.opts.WorkingDir != "" {
		run.OriginalURIBaseIDs = map[string]SARIFArtifact{
			sarifBaseID: {URI: "file://" + filepath.ToSlash(r.opts.WorkingDir) + "/"},
		}
	}

	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			artifact := SARIFArtifact{URI: r.opts.displayPath(file.Path)}
			if r.opts.WorkingDir != "" && !filepath.IsAbs(artifact.URI) {
				artifact.URIBaseID = sarifBaseID
			}
			for _, diag := range file.Result.Diagnostics {
				run.Results = append(run.Results, sarifResult(rules, artifact, diag))
			}
		}
	}

	run.Tool.Driver = SARIFDriver{
		Name:           "fmtsubst",
		Version:        cmp.Or(r.opts.ToolVersion, DefaultOptions().ToolVersion),
		InformationURI: sarifToolURI,
		Rules:          rules.list,
	}
	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

// add returns the descriptor index for id, registering it on first sight.
// Rules that only appear in diagnostics land after registered ones.
func (r *sarifRules) add(id, name, description string, sev config.Severity, tags []string) int {
	if idx, ok := r.index[id]; ok {
		return idx
	}
	rule := SARIFRule{
		ID:               id,
		Name:             name,
		ShortDescription: SARIFText{description},
		DefaultConfig:    &SARIFRuleConfig{sarifLevel(sev)},
	}
	if len(tags) > 0 {
		rule.Properties = &SARIFRuleTags{tags}
	}
	r.index[id] = len(r.list)
	r.list = append(r.list, rule)
	return len(r.list) - 1
}

func sarifResult(rules *sarifRules, artifact SARIFArtifact, diag lint.Diagnostic) SARIFResult {
	res := SARIFResult{
		RuleID:    diag.RuleID,
		RuleIndex: rules.add(diag.RuleID, diag.RuleName, diag.Message, diag.Severity, nil),
		Level:     sarifLevel(diag.Severity),
		Message:   SARIFText{diag.Message},
		Locations: make([]SARIFLocation, 1),
	}
	loc := &res.Locations[0].PhysicalLocation
	loc.ArtifactLocation = artifact
	loc.Region = SARIFRegion{diag.StartLine, diag.StartColumn, diag.EndLine, diag.EndColumn}

	if len(diag.FixEdits) == 0 {
		return res
	}
	fix := SARIFFix{Description: SARIFText{cmp.Or(diag.Suggestion, diag.Message)}}
	change := SARIFArtifactChange{ArtifactLocation: artifact}
	for _, edit := range diag.FixEdits {
		change.Replacements = append(change.Replacements, SARIFReplacement{
			DeletedRegion:   SARIFByteRegion{edit.StartOffset, edit.Len()},
			InsertedContent: &SARIFText{edit.NewText},
		})
	}
	fix.ArtifactChanges = []SARIFArtifactChange{change}
	res.Fixes = []SARIFFix{fix}
	return res
}

func sarifLevel(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
