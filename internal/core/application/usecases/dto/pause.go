package dto

import (
	"time"

	"production/internal/core/domain/model/pause"
)

type PauseView struct {
	ID                   string     `json:"id"`
	OrderID              string     `json:"orderId"`
	Type                 string     `json:"type"`
	CountsTowardDowntime bool       `json:"countsTowardDowntime"`
	Comment              string     `json:"comment"`
	StartedAt            time.Time  `json:"startedAt"`
	EndedAt              *time.Time `json:"endedAt"`
	DurationMinutes      *int       `json:"durationMinutes"`
}

func NewPauseView(p *pause.Pause) PauseView {
	return PauseView{
		ID:                   p.ID().String(),
		OrderID:              p.OrderID().String(),
		Type:                 p.Type().String(),
		CountsTowardDowntime: p.CountsAsDowntime(),
		Comment:              p.Comment(),
		StartedAt:            p.StartedAt(),
		EndedAt:              p.EndedAt(),
		DurationMinutes:      p.DurationMinutes(),
	}
}

func NewPauseViews(pauses []*pause.Pause) []PauseView {
	views := make([]PauseView, 0, len(pauses))
	for _, p := range pauses {
		views = append(views, NewPauseView(p))
	}
	return views
}

type PauseTypeStatisticsView struct {
	Type           string `json:"type"`
	Count          int    `json:"count"`
	OpenCount      int    `json:"openCount"`
	TotalMinutes   int    `json:"totalMinutes"`
	CountedMinutes int    `json:"countedMinutes"`
}

type PauseStatisticsView struct {
	OrderID       string                    `json:"orderId"`
	TotalPauses   int                       `json:"totalPauses"`
	PausedMinutes int                       `json:"pausedMinutes"`
	ByType        []PauseTypeStatisticsView `json:"byType"`
}

func NewPauseStatisticsView(orderID string, ledger pause.Ledger) PauseStatisticsView {
	stats := ledger.StatisticsByType()
	byType := make([]PauseTypeStatisticsView, 0, len(stats))
	for _, s := range stats {
		byType = append(byType, PauseTypeStatisticsView{
			Type:           s.Type.String(),
			Count:          s.Count,
			OpenCount:      s.OpenCount,
			TotalMinutes:   s.TotalMinutes,
			CountedMinutes: s.CountedMinutes,
		})
	}
	return PauseStatisticsView{
		OrderID:       orderID,
		TotalPauses:   len(ledger.Pauses()),
		PausedMinutes: ledger.SumCountingDuration(),
		ByType:        byType,
	}
}
