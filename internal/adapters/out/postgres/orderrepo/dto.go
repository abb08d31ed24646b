// Package orderrepo persists order aggregates with GORM. The whole aggregate lives
// in one row; the sealed metrics snapshot is stored as a JSON document.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// SingleStartedIndex is the partial unique index that keeps at most one row in
// Started status.
const SingleStartedIndex = "idx_orders_single_started"

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code        string     `gorm:"not null;uniqueIndex:idx_orders_code"`
	ArticleCode string     `gorm:"not null"`
	ProductName string     `gorm:"not null"`
	Details     DetailsDTO `gorm:"embedded;embeddedPrefix:detail_"`

	TargetUnits    int
	TargetBoxes    int
	UnitsPerBox    *int
	EstimatedHours float64

	Status        int `gorm:"not null;uniqueIndex:idx_orders_single_started,where:status = 2"`
	CreatedAt     time.Time
	StartedAt     *time.Time
	FinishedAt    *time.Time
	PausedMinutes int

	Counters    CountersDTO    `gorm:"embedded;embeddedPrefix:counter_"`
	WeightScale WeightScaleDTO `gorm:"embedded;embeddedPrefix:weight_scale_"`

	RepercapEnabled  bool
	InitialCutNumber *int
	FinalCutNumber   *int

	ClosingGoodUnits *int
	ClosingBadUnits  *int
	Metrics          *metrics.Snapshot `gorm:"type:jsonb;serializer:json"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

type DetailsDTO struct {
	Format            string
	ProductType       string
	ContainerType     string
	UnitsPerContainer *int
}

type CountersDTO struct {
	GoodUnits        int
	Boxes            int
	RejectedUnits    int
	WeightScaleUnits int
	OperatorUnits    int
}

type WeightScaleDTO struct {
	Total          int
	RecoveredUnits int
	RecoveryRate   float64
	Recirculation  int
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.State()
	return OrderDTO{
		ID:          s.ID.Bytes(),
		Code:        s.Code,
		ArticleCode: s.ArticleCode,
		ProductName: s.ProductName,
		Details: DetailsDTO{
			Format:            s.Details.Format,
			ProductType:       s.Details.ProductType,
			ContainerType:     s.Details.ContainerType,
			UnitsPerContainer: s.Details.UnitsPerContainer,
		},
		TargetUnits:    s.TargetUnits,
		TargetBoxes:    s.TargetBoxes,
		UnitsPerBox:    s.UnitsPerBox,
		EstimatedHours: s.EstimatedHours,
		Status:         int(s.Status),
		CreatedAt:      s.CreatedAt,
		StartedAt:      s.StartedAt,
		FinishedAt:     s.FinishedAt,
		PausedMinutes:  s.PausedMinutes,
		Counters: CountersDTO{
			GoodUnits:        s.Counters.GoodUnits,
			Boxes:            s.Counters.Boxes,
			RejectedUnits:    s.Counters.RejectedUnits,
			WeightScaleUnits: s.Counters.WeightScaleUnits,
			OperatorUnits:    s.Counters.OperatorUnits,
		},
		WeightScale: WeightScaleDTO{
			Total:          s.WeightScale.Total,
			RecoveredUnits: s.WeightScale.RecoveredUnits,
			RecoveryRate:   s.WeightScale.RecoveryRate,
			Recirculation:  s.WeightScale.Recirculation,
		},
		RepercapEnabled:  s.Repercap.Enabled,
		InitialCutNumber: s.Repercap.InitialCut,
		FinalCutNumber:   s.Repercap.FinalCut,
		ClosingGoodUnits: s.ClosingGoodUnits,
		ClosingBadUnits:  s.ClosingBadUnits,
		Metrics:          s.Metrics,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:          id,
		Code:        dto.Code,
		ArticleCode: dto.ArticleCode,
		ProductName: dto.ProductName,
		Details: order.Details{
			Format:            dto.Details.Format,
			ProductType:       dto.Details.ProductType,
			ContainerType:     dto.Details.ContainerType,
			UnitsPerContainer: dto.Details.UnitsPerContainer,
		},
		TargetUnits:    dto.TargetUnits,
		TargetBoxes:    dto.TargetBoxes,
		UnitsPerBox:    dto.UnitsPerBox,
		EstimatedHours: dto.EstimatedHours,
		Status:         order.Status(dto.Status),
		CreatedAt:      dto.CreatedAt,
		StartedAt:      dto.StartedAt,
		FinishedAt:     dto.FinishedAt,
		PausedMinutes:  dto.PausedMinutes,
		Counters: order.Counters{
			GoodUnits:        dto.Counters.GoodUnits,
			Boxes:            dto.Counters.Boxes,
			RejectedUnits:    dto.Counters.RejectedUnits,
			WeightScaleUnits: dto.Counters.WeightScaleUnits,
			OperatorUnits:    dto.Counters.OperatorUnits,
		},
		WeightScale: order.WeightScale{
			Total:          dto.WeightScale.Total,
			RecoveredUnits: dto.WeightScale.RecoveredUnits,
			RecoveryRate:   dto.WeightScale.RecoveryRate,
			Recirculation:  dto.WeightScale.Recirculation,
		},
		Repercap: order.Repercap{
			Enabled:    dto.RepercapEnabled,
			InitialCut: dto.InitialCutNumber,
			FinalCut:   dto.FinalCutNumber,
		},
		ClosingGoodUnits: dto.ClosingGoodUnits,
		ClosingBadUnits:  dto.ClosingBadUnits,
		Metrics:          dto.Metrics,
	})
}
