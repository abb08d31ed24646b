// Package order provides the ProductionOrder aggregate: its lifecycle state machine,
// its live counters and the sealing of metrics at finalization.
//
// The package includes:
//   - Order: the aggregate root holding identity, planning, counters and metrics
//   - Status: the state machine Created -> Started <-> Paused -> Finished
//   - Counters and WeightScale: raw line counts and the figures derived from them
//   - ClosingInputs and Calculator: the finalization inputs and the contract of the
//     metrics engine
//
// Key business rules:
//   - Target units are positive; target boxes and units per box are not negative
//   - The repercap flag requires an initial cut number
//   - Counters change only while Started or Paused and never go negative
//   - Box changes overwrite good units (boxes * units per box); good-unit changes only
//     ever raise the box count
//   - Resuming closes the open pause; its minutes are accumulated only when the pause
//     counts as downtime
//   - Finish is allowed from every status except Finished and seals the metrics
package order
