// Package rules provides the built-in lint rules for fmtsubst.
//
// # Rules
//
//   - FS001: fmt-format-substitute - Calls to fmt::format with a literal
//     format string should use absl::Substitute. Fixable. Options:
//     callee, target, raw_delimiter.
//
//   - FS002: fmt-format-dynamic - Calls whose format string is computed,
//     carries a user-defined suffix, or uses a wide or Unicode encoding
//     prefix. Disabled by default.
//
// # Registration
//
// All rules register with lint.DefaultRegistry at init. Importing this
// package for side effects is enough to make them available:
//
//	import _ "github.com/yaklabco/fmtsubst/pkg/lint/rules"
//
// # Packs
//
// Packs bundle rule settings for common workflows (migrate, strict, audit)
// and are offered by the init command.
package rules
