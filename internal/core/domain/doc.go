// Package domain defines the core business entities for Virta.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A stored forum post or course content section
//   - Query: A single student question, optionally with an image
//   - Match: A (document, score) pair produced during retrieval
//   - Answer: The generated answer plus citation links
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
