// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every service is a pure function over a snapshot of the stores:
// no shared mutable state, no ordering dependency between repeated
// calls, safe to re-run on every refresh.
package services
