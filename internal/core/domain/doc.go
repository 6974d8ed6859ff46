// Package domain defines the core business entities for Provo.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Fragment: A captured unit of context
//   - Decision: A "what was decided and why" fact extracted from a fragment
//   - Assumption: A stated or inferred premise with tri-state validity
//   - FragmentLink: A directed, typed, weighted edge between two fragments
//   - GraphData: The derived node/edge view over a filtered fragment set
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
