// Package diag defines the core diagnostic model shared by all pipeline phases.
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by lexer / parser / evaluator passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag does not perform any formatting or IO. Rendering
// responsibilities live in internal/diagfmt; orchestration lives in the
// driver layer.
//
// Keep the data model deterministic: any new fields should avoid side
// effects, so the CLI and tooling can safely serialise diagnostics for
// testing.
package diag
