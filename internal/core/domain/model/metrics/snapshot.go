package metrics

// Snapshot is the sealed set of derived figures written when an order is finished.
// A provisional snapshot with the same shape backs the live metrics preview.
type Snapshot struct {
	TotalMinutes  int `json:"totalMinutes"`
	ActiveMinutes int `json:"activeMinutes"`
	PausedMinutes int `json:"pausedMinutes"`

	ReferenceRate  float64 `json:"referenceRate"`
	EstimatedHours float64 `json:"estimatedHours"`

	GoodUnits        int  `json:"goodUnits"`
	ClosingGoodUnits int  `json:"closingGoodUnits"`
	ClosingBadUnits  int  `json:"closingBadUnits"`
	TotalUnits       int  `json:"totalUnits"`
	RejectedUnits    int  `json:"rejectedUnits"`
	WeightScaleTotal int  `json:"weightScaleTotal"`
	RecoveredUnits   int  `json:"recoveredUnits"`
	FinalCutNumber   *int `json:"finalCutNumber"`
	Recirculation    *int `json:"recirculation"`

	PausedPercent        float64  `json:"pausedPercent"`
	GoodPercent          float64  `json:"goodPercent"`
	BadPercent           float64  `json:"badPercent"`
	CompletionPercent    float64  `json:"completionPercent"`
	RejectionRate        float64  `json:"rejectionRate"`
	WeightRecoveryRate   float64  `json:"weightRecoveryRate"`
	RepercapRecoveryRate *float64 `json:"repercapRecoveryRate"`

	ActualRate          float64 `json:"actualRate"`
	ActualVsTheoretical float64 `json:"actualVsTheoretical"`

	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Quality      float64 `json:"quality"`
	OEE          float64 `json:"oee"`
}

// HasNegativeActiveTime reports counted pauses longer than the elapsed time,
// typically after the start time was shifted back and forth.
func (s Snapshot) HasNegativeActiveTime() bool {
	return s.ActiveMinutes < 0
}
