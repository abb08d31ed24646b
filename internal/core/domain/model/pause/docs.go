// Package pause models the downtime records of a production order.
//
// The package includes:
//   - Type and Catalog: the configured pause categories and whether each one
//     counts toward efficiency-penalizing downtime
//   - Pause: a single pause interval, open until it is ended
//   - Ledger: the read model over all pauses of one order, used to sum the
//     counted downtime and to build per-type statistics
//
// Key business rules:
//   - At most one pause per order is open at any time
//   - Duration is fixed at close time as whole minutes, floor((end - start) / 60000 ms)
//   - The downtime flag is set from the type when the pause starts and only changes
//     through an explicit type change while the pause is still open
//   - Shift changes and partial interruptions never count toward downtime, whatever
//     their stored flag says
package pause
