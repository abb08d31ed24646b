// Package services provides domain services of the production system that do not
// belong to a single aggregate.
//
// The package includes:
//   - MetricsEngine: derives the OEE snapshot of an order from its counters, its
//     pause ledger and the closing inputs entered at finalization
package services
