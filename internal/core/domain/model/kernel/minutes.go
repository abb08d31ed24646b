package kernel

import "time"

// WholeMinutes returns the number of whole minutes between from and to,
// floor((to - from) / 60000 ms). A negative interval yields a negative count.
func WholeMinutes(from, to time.Time) int {
	ms := to.Sub(from).Milliseconds()
	minutes := ms / 60000
	if ms < 0 && ms%60000 != 0 {
		minutes--
	}
	return int(minutes)
}
