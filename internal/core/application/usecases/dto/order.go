// Package dto holds the read models returned by queries and published with
// notifications. They are plain JSON-tagged structs built from domain aggregates.
package dto

import (
	"time"

	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
)

type OrderView struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	ArticleCode string `json:"articleCode"`
	ProductName string `json:"productName"`

	Format            string `json:"format,omitempty"`
	ProductType       string `json:"productType,omitempty"`
	ContainerType     string `json:"containerType,omitempty"`
	UnitsPerContainer *int   `json:"unitsPerContainer,omitempty"`

	TargetUnits    int     `json:"targetUnits"`
	TargetBoxes    int     `json:"targetBoxes"`
	UnitsPerBox    *int    `json:"unitsPerBox"`
	EstimatedHours float64 `json:"estimatedHours"`

	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	StartedAt  *time.Time `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`

	PausedMinutes int `json:"pausedMinutes"`

	GoodUnits        int `json:"goodUnits"`
	Boxes            int `json:"boxes"`
	RejectedUnits    int `json:"rejectedUnits"`
	WeightScaleUnits int `json:"weightScaleUnits"`
	OperatorUnits    int `json:"operatorUnits"`

	WeightScaleTotal         int     `json:"weightScaleTotal"`
	WeightScaleRecovered     int     `json:"weightScaleRecovered"`
	WeightScaleRecoveryRate  float64 `json:"weightScaleRecoveryRate"`
	WeightScaleRecirculation int     `json:"weightScaleRecirculation"`

	RepercapEnabled  bool `json:"repercapEnabled"`
	InitialCutNumber *int `json:"initialCutNumber"`
	FinalCutNumber   *int `json:"finalCutNumber"`

	ClosingGoodUnits *int `json:"closingGoodUnits"`
	ClosingBadUnits  *int `json:"closingBadUnits"`

	Metrics *metrics.Snapshot `json:"metrics"`
	Pauses  []PauseView       `json:"pauses,omitempty"`
}

// NewOrderView maps an aggregate and, optionally, its pauses.
func NewOrderView(o *order.Order, pauses []*pause.Pause) OrderView {
	details := o.Details()
	counters := o.Counters()
	ws := o.WeightScale()
	repercap := o.Repercap()

	v := OrderView{
		ID:                o.ID().String(),
		Code:              o.Code(),
		ArticleCode:       o.ArticleCode(),
		ProductName:       o.ProductName(),
		Format:            details.Format,
		ProductType:       details.ProductType,
		ContainerType:     details.ContainerType,
		UnitsPerContainer: details.UnitsPerContainer,
		TargetUnits:       o.TargetUnits(),
		TargetBoxes:       o.TargetBoxes(),
		UnitsPerBox:       o.UnitsPerBox(),
		EstimatedHours:    o.EstimatedHours(),
		Status:            o.Status().String(),
		CreatedAt:         o.CreatedAt(),
		StartedAt:         o.StartedAt(),
		FinishedAt:        o.FinishedAt(),
		PausedMinutes:     o.PausedMinutes(),

		GoodUnits:        counters.GoodUnits,
		Boxes:            counters.Boxes,
		RejectedUnits:    counters.RejectedUnits,
		WeightScaleUnits: counters.WeightScaleUnits,
		OperatorUnits:    counters.OperatorUnits,

		WeightScaleTotal:         ws.Total,
		WeightScaleRecovered:     ws.RecoveredUnits,
		WeightScaleRecoveryRate:  ws.RecoveryRate,
		WeightScaleRecirculation: ws.Recirculation,

		RepercapEnabled:  repercap.Enabled,
		InitialCutNumber: repercap.InitialCut,
		FinalCutNumber:   repercap.FinalCut,

		ClosingGoodUnits: o.ClosingGoodUnits(),
		ClosingBadUnits:  o.ClosingBadUnits(),
		Metrics:          o.Metrics(),
	}

	if len(pauses) > 0 {
		v.Pauses = NewPauseViews(pauses)
	}
	return v
}

func NewOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o, nil))
	}
	return views
}

// MetricsView is the OEE summary of a finished order.
type MetricsView struct {
	OrderID  string           `json:"orderId"`
	Code     string           `json:"code"`
	Status   string           `json:"status"`
	Snapshot metrics.Snapshot `json:"snapshot"`
}

// LiveMetricsView is a provisional snapshot computed at GeneratedAt. It is never stored.
type LiveMetricsView struct {
	OrderID     string           `json:"orderId"`
	Code        string           `json:"code"`
	Status      string           `json:"status"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Snapshot    metrics.Snapshot `json:"snapshot"`
}

// DeletedOrderView is the payload of the order:deleted event.
type DeletedOrderView struct {
	ID string `json:"id"`
}
