// Package kernel provides the shared primitives of the production domain model.
//
// The package includes:
//   - UUID: identifier value object for orders and pauses
//   - WholeMinutes: the floor-to-minute interval arithmetic used by pause
//     durations and order elapsed-time figures
package kernel
