// Package domain defines the core business entities for docprep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A unit of text plus metadata flowing through the pipeline
//   - FilterOptions: The inclusive length window applied after preprocessing
//   - Settings: Pipeline configuration resolved from file and flags
//   - RunResult: The documents and counters produced by one ingest run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
