// Package cleaning models the cleaning orders run on the line between production
// orders.
//
// A cleaning order moves Created -> Started -> Finished. Its duration is fixed
// when it finishes, in whole seconds. Only orders that never started can be
// deleted. Cleaning time is not part of any production order's metrics.
package cleaning
