package services

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
)

var ErrMetricsEngineIsNotConstructed = errors.New("MetricsEngine must be created via NewMetricsEngine")

// MetricsEngine computes the derived production metrics of an order. It is a pure
// function of its inputs: it reads the order and the ledger and never mutates them.
//
// Pipeline:
//  1. good units = units per box * boxes when both are known, else the counter
//  2. an open pause is treated as ending at now
//  3. paused minutes = counted downtime of the ledger
//  4. total minutes = whole minutes since the first start, at least 1 once started
//  5. active minutes = total - paused (not clamped)
//  6. closing good/bad units and their total
//  7. recovered units from the weighing station
//  8. repercap recirculation when both cut numbers are known
//  9. rates, availability, performance, quality and OEE
//  10. rounding to six decimals
//
// Example:
//
//	engine, _ := services.NewMetricsEngine(rate)
//	if err := o.Finish(ledger, closing, engine, now); err != nil {
//	    return err
//	}
type MetricsEngine struct {
	rate metrics.ReferenceRate
}

func NewMetricsEngine(rate metrics.ReferenceRate) (*MetricsEngine, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	return &MetricsEngine{rate: rate}, nil
}

func (e *MetricsEngine) ReferenceRate() metrics.ReferenceRate {
	return e.rate
}

// Compute returns the metrics snapshot of o as of now.
func (e *MetricsEngine) Compute(
	o *order.Order,
	ledger pause.Ledger,
	closing order.ClosingInputs,
	now time.Time,
) (metrics.Snapshot, error) {
	if e == nil {
		return metrics.Snapshot{}, ErrMetricsEngineIsNotConstructed
	}
	if err := errors.Join(o.Validate(), e.rate.Validate(), closing.Validate()); err != nil {
		return metrics.Snapshot{}, err
	}

	counters := o.Counters()

	goodUnits := counters.GoodUnits
	if upb := o.UnitsPerBox(); upb != nil && *upb > 0 && counters.Boxes > 0 {
		goodUnits = *upb * counters.Boxes
	}

	pausedMinutes := ledger.CountingDurationAt(now)

	totalMinutes := 0
	if started := o.StartedAt(); started != nil {
		totalMinutes = max(1, kernel.WholeMinutes(*started, now))
	}
	activeMinutes := totalMinutes - pausedMinutes

	closingGood := resolveClosingGood(closing.GoodUnits, goodUnits, o.ClosingGoodUnits())
	closingBad := firstOf(closing.BadUnits, o.ClosingBadUnits())
	totalUnits := closingGood + closingBad

	rejected := counters.RejectedUnits
	if closing.RejectedUnits != nil {
		rejected = *closing.RejectedUnits
	}
	weightScaleTotal := o.WeightScale().Total
	if closing.WeightScaleTotal != nil {
		weightScaleTotal = *closing.WeightScaleTotal
	}
	recovered := metrics.RecoveredUnits(weightScaleTotal, goodUnits)

	finalCut := o.Repercap().FinalCut
	if closing.FinalCutNumber != nil {
		finalCut = closing.FinalCutNumber
	}
	recirculation := metrics.RepercapRecirculation(o.Repercap().InitialCut, finalCut, totalUnits)

	ratePerHour := e.rate.UnitsPerHour()
	total := float64(totalUnits)

	var repercapRate *float64
	if recirculation != nil && totalUnits > 0 {
		v := metrics.Round6(float64(*recirculation) / total * 100)
		repercapRate = &v
	}

	actualRate := 0.0
	if activeMinutes > 0 {
		actualRate = total / float64(activeMinutes) * 60
	}

	availability := metrics.Ratio(float64(activeMinutes), float64(totalMinutes))
	performance := 0.0
	if activeMinutes > 0 {
		performance = metrics.Ratio(total, float64(activeMinutes)*e.rate.UnitsPerMinute())
	}
	quality := metrics.Ratio(float64(closingGood), total)

	return metrics.Snapshot{
		TotalMinutes:  totalMinutes,
		ActiveMinutes: activeMinutes,
		PausedMinutes: pausedMinutes,

		ReferenceRate:  ratePerHour,
		EstimatedHours: e.rate.EstimatedHours(o.TargetUnits()),

		GoodUnits:        goodUnits,
		ClosingGoodUnits: closingGood,
		ClosingBadUnits:  closingBad,
		TotalUnits:       totalUnits,
		RejectedUnits:    rejected,
		WeightScaleTotal: weightScaleTotal,
		RecoveredUnits:   recovered,
		FinalCutNumber:   finalCut,
		Recirculation:    recirculation,

		PausedPercent:        metrics.Round6(metrics.Percent(float64(pausedMinutes), float64(totalMinutes))),
		GoodPercent:          metrics.Round6(metrics.Percent(float64(closingGood), total)),
		BadPercent:           metrics.Round6(metrics.Percent(float64(closingBad), total)),
		CompletionPercent:    metrics.Round6(metrics.Percent(float64(closingGood), float64(o.TargetUnits()))),
		RejectionRate:        metrics.Round6(metrics.Percent(float64(rejected), total)),
		WeightRecoveryRate:   metrics.Round6(metrics.Percent(float64(recovered), float64(weightScaleTotal))),
		RepercapRecoveryRate: repercapRate,

		ActualRate:          metrics.Round6(actualRate),
		ActualVsTheoretical: metrics.Round6(metrics.Percent(actualRate, ratePerHour)),

		Availability: metrics.Round6(availability),
		Performance:  metrics.Round6(performance),
		Quality:      metrics.Round6(quality),
		OEE:          metrics.Round6(availability * performance * quality),
	}, nil
}

// resolveClosingGood picks the explicit input, then the derived good units, then
// the stored closing figure.
func resolveClosingGood(explicit *int, derived int, stored *int) int {
	switch {
	case explicit != nil:
		return *explicit
	case derived > 0:
		return derived
	case stored != nil && *stored > 0:
		return *stored
	default:
		return 0
	}
}

func firstOf(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
