package pause

import (
	"sort"
	"time"
)

// Ledger is the complete pause history of one order.
type Ledger struct {
	pauses []*Pause
}

func NewLedger(pauses []*Pause) Ledger {
	return Ledger{pauses: pauses}
}

func (l Ledger) Pauses() []*Pause {
	return l.pauses
}

// Open returns the open pause, or nil.
func (l Ledger) Open() *Pause {
	for _, p := range l.pauses {
		if p.IsOpen() {
			return p
		}
	}
	return nil
}

// SumCountingDuration sums the durations of closed pauses that count as downtime.
func (l Ledger) SumCountingDuration() int {
	total := 0
	for _, p := range l.pauses {
		if p.IsOpen() || !p.CountsAsDowntime() {
			continue
		}
		total += *p.durationMinutes
	}
	return total
}

// CountingDurationAt is SumCountingDuration with any open counting pause treated
// as if it ended at now.
func (l Ledger) CountingDurationAt(now time.Time) int {
	total := l.SumCountingDuration()
	if open := l.Open(); open != nil && open.CountsAsDowntime() {
		total += open.DurationAt(now)
	}
	return total
}

// TypeStatistics aggregates the pauses of one type.
type TypeStatistics struct {
	Type           Type
	Count          int
	OpenCount      int
	TotalMinutes   int
	CountedMinutes int
}

// StatisticsByType groups closed and open pauses per type, ordered by type name.
// Open pauses contribute to the counts only.
func (l Ledger) StatisticsByType() []TypeStatistics {
	byType := make(map[Type]*TypeStatistics)
	for _, p := range l.pauses {
		s, ok := byType[p.pauseType]
		if !ok {
			s = &TypeStatistics{Type: p.pauseType}
			byType[p.pauseType] = s
		}
		s.Count++
		if p.IsOpen() {
			s.OpenCount++
			continue
		}
		s.TotalMinutes += *p.durationMinutes
		if p.CountsAsDowntime() {
			s.CountedMinutes += *p.durationMinutes
		}
	}

	out := make([]TypeStatistics, 0, len(byType))
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
