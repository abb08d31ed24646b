// Package metrics holds the value types and formulas of the production metrics
// pipeline: the reference rate, the sealed Snapshot written at finalization, and
// the small formulas shared by the live counters and the metrics engine.
//
// Percentages are expressed on a 0-100 scale, the availability, performance and
// quality triad (and OEE) on a 0-1 scale. Every fractional figure is rounded to
// six decimal places with Round6 before it is stored.
package metrics
