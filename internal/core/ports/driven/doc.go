// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them. The fragment store, the extraction pipeline's outputs
// and the search ranking are collaborators behind these contracts; the
// CLI ships a local SQLite implementation and an HTTP client for a
// remote provenance API.
//
// # Required Interfaces
//
//   - FragmentStore: Fragment persistence and retrieval
//   - LinkStore: The typed, weighted link index between fragments
//   - DecisionStore: Read access to extracted decisions
//   - AssumptionStore: Assumption persistence and validity updates
//   - Searcher: Ranked free-text search over fragments
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
