// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextTransformer: One text stage (cleaner, noise remover, normaliser)
//   - Scorer: Heuristic quality scoring
//   - Loader: Produces documents from a source (API, S3, GCS, HTML, PDF)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Enricher: Adds derived metadata after filtering. Without it, enhanced runs add nothing.
//   - Watcher: Pushes documents as a source changes. Only filesystem loaders implement it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, loader, or transform package
package driven
