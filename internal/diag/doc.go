// Package diag defines the diagnostic model shared by the composition
// surfaces of the CLI.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by graph construction, linearization, validation
//     and call resolution.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering lives in cmd/weave; the engine packages themselves return
// typed errors and never construct diagnostics directly. FromError maps
// those errors onto codes for surfaces that want to collect every broken
// class instead of stopping at the first.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string
//     form, one range per fault family.
//   - Subject – the unit or class the finding is about. The engine
//     consumes an already-resolved unit graph, so there are no source
//     spans; the subject name is the anchor.
//   - Message – human oriented text; keep it short and actionable.
//   - Notes – optional secondary context (e.g. cycle participants).
//
// Keep the data model deterministic: diagnostics are sorted by subject,
// severity, code and message so repeated runs produce identical output.
package diag
