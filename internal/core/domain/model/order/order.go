package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/metrics"
	"production/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details are free-form product descriptors shown to operators.
type Details struct {
	Format            string
	ProductType       string
	ContainerType     string
	UnitsPerContainer *int
}

// Repercap is the sanitary-cut tracking of an order. InitialCut is required when
// Enabled; FinalCut is recorded at finalization.
type Repercap struct {
	Enabled    bool
	InitialCut *int
	FinalCut   *int
}

// Params carries the fields of a new order.
type Params struct {
	Code             string
	ArticleCode      string
	ProductName      string
	Details          Details
	TargetUnits      int
	TargetBoxes      int
	UnitsPerBox      *int
	RepercapEnabled  bool
	InitialCutNumber *int
}

// Order is the aggregate root of a production run. It owns the lifecycle status,
// the live counters and, once finished, the sealed metrics snapshot.
//
// Order follows these invariants:
//   - Code, article code and product name are non-empty
//   - Target units are positive, target boxes and units per box are not negative
//   - Counters never go negative and change only while Started or Paused
//   - The start time is set once, on the first Start
//   - Once Finished nothing changes any more
type Order struct {
	id          kernel.UUID
	code        string
	articleCode string
	productName string
	details     Details

	targetUnits    int
	targetBoxes    int
	unitsPerBox    *int
	estimatedHours float64

	status     Status
	createdAt  time.Time
	startedAt  *time.Time
	finishedAt *time.Time

	// pausedMinutes accumulates closed pauses that count as downtime.
	pausedMinutes int

	counters    Counters
	weightScale WeightScale
	repercap    Repercap

	closingGoodUnits *int
	closingBadUnits  *int
	metrics          *metrics.Snapshot

	isConstructed bool
}

// NewOrder creates an order in Created status. Estimated production hours are
// derived from the target and the reference rate. All invalid fields are reported
// together.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Params{
//	    Code:        "OF-2025-0042",
//	    ArticleCode: "ART-118",
//	    ProductName: "Gel 500ml",
//	    TargetUnits: 4000,
//	    TargetBoxes: 167,
//	}, rate, clock.Now())
func NewOrder(id kernel.UUID, p Params, rate metrics.ReferenceRate, now time.Time) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(p.Code),
		o.setArticleCode(p.ArticleCode),
		o.setProductName(p.ProductName),
		o.setDetails(p.Details),
		o.setTargetUnits(p.TargetUnits),
		o.setTargetBoxes(p.TargetBoxes),
		o.setUnitsPerBox(p.UnitsPerBox),
		o.setRepercap(p.RepercapEnabled, p.InitialCutNumber),
		rate.Validate(),
	); err != nil {
		return nil, err
	}

	o.estimatedHours = rate.EstimatedHours(o.targetUnits)
	return o, nil
}

// State is the full persisted form of an order, used by repositories.
type State struct {
	ID             kernel.UUID
	Code           string
	ArticleCode    string
	ProductName    string
	Details        Details
	TargetUnits    int
	TargetBoxes    int
	UnitsPerBox    *int
	EstimatedHours float64

	Status        Status
	CreatedAt     time.Time
	StartedAt     *time.Time
	FinishedAt    *time.Time
	PausedMinutes int

	Counters    Counters
	WeightScale WeightScale
	Repercap    Repercap

	ClosingGoodUnits *int
	ClosingBadUnits  *int
	Metrics          *metrics.Snapshot
}

// RestoreOrder rebuilds an order from persisted state, re-checking the invariants.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		estimatedHours:   s.EstimatedHours,
		createdAt:        s.CreatedAt,
		startedAt:        s.StartedAt,
		finishedAt:       s.FinishedAt,
		weightScale:      s.WeightScale,
		closingGoodUnits: s.ClosingGoodUnits,
		closingBadUnits:  s.ClosingBadUnits,
		metrics:          s.Metrics,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCode(s.Code),
		o.setArticleCode(s.ArticleCode),
		o.setProductName(s.ProductName),
		o.setDetails(s.Details),
		o.setTargetUnits(s.TargetUnits),
		o.setTargetBoxes(s.TargetBoxes),
		o.setUnitsPerBox(s.UnitsPerBox),
		o.setRepercap(s.Repercap.Enabled, s.Repercap.InitialCut),
		o.setStatus(s.Status),
		o.setPausedMinutes(s.PausedMinutes),
		o.setCounters(s.Counters),
	); err != nil {
		return nil, err
	}
	o.repercap.FinalCut = s.Repercap.FinalCut

	if s.Status == Finished && s.Metrics == nil {
		return nil, errs.NewValueIsRequiredError("metrics of a finished order")
	}

	return o, nil
}

// State returns the full persisted form of the order, the inverse of RestoreOrder.
func (o *Order) State() State {
	return State{
		ID:               o.id,
		Code:             o.code,
		ArticleCode:      o.articleCode,
		ProductName:      o.productName,
		Details:          o.details,
		TargetUnits:      o.targetUnits,
		TargetBoxes:      o.targetBoxes,
		UnitsPerBox:      o.unitsPerBox,
		EstimatedHours:   o.estimatedHours,
		Status:           o.status,
		CreatedAt:        o.createdAt,
		StartedAt:        o.startedAt,
		FinishedAt:       o.finishedAt,
		PausedMinutes:    o.pausedMinutes,
		Counters:         o.counters,
		WeightScale:      o.weightScale,
		Repercap:         o.repercap,
		ClosingGoodUnits: o.closingGoodUnits,
		ClosingBadUnits:  o.closingBadUnits,
		Metrics:          o.metrics,
	}
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Code() string {
	return o.code
}

func (o *Order) ArticleCode() string {
	return o.articleCode
}

func (o *Order) ProductName() string {
	return o.productName
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) TargetUnits() int {
	return o.targetUnits
}

func (o *Order) TargetBoxes() int {
	return o.targetBoxes
}

// UnitsPerBox is nil when the packaging ratio is unknown.
func (o *Order) UnitsPerBox() *int {
	return o.unitsPerBox
}

func (o *Order) EstimatedHours() float64 {
	return o.estimatedHours
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StartedAt is the first start time, nil before the order is started.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

func (o *Order) FinishedAt() *time.Time {
	return o.finishedAt
}

// PausedMinutes is the downtime accumulated on resume from counting pauses.
func (o *Order) PausedMinutes() int {
	return o.pausedMinutes
}

func (o *Order) Counters() Counters {
	return o.counters
}

func (o *Order) WeightScale() WeightScale {
	return o.weightScale
}

func (o *Order) Repercap() Repercap {
	return o.repercap
}

func (o *Order) ClosingGoodUnits() *int {
	return o.closingGoodUnits
}

func (o *Order) ClosingBadUnits() *int {
	return o.closingBadUnits
}

// Metrics is nil until the order is finished.
func (o *Order) Metrics() *metrics.Snapshot {
	return o.metrics
}

func (o *Order) unitsPerBoxValue() int {
	if o.unitsPerBox == nil {
		return 0
	}
	return *o.unitsPerBox
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	o.code = code
	return nil
}

func (o *Order) setArticleCode(articleCode string) error {
	articleCode = strings.TrimSpace(articleCode)
	if articleCode == "" {
		return errs.NewValueIsRequiredError("article code")
	}
	o.articleCode = articleCode
	return nil
}

func (o *Order) setProductName(productName string) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	o.productName = productName
	return nil
}

func (o *Order) setDetails(details Details) error {
	if details.UnitsPerContainer != nil && *details.UnitsPerContainer < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"units per container",
			fmt.Errorf("%d is negative", *details.UnitsPerContainer),
		)
	}
	o.details = details
	return nil
}

func (o *Order) setTargetUnits(targetUnits int) error {
	if targetUnits <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("target units", fmt.Errorf("%d is not greater than 0", targetUnits))
	}
	o.targetUnits = targetUnits
	return nil
}

func (o *Order) setTargetBoxes(targetBoxes int) error {
	if targetBoxes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("target boxes", fmt.Errorf("%d is negative", targetBoxes))
	}
	o.targetBoxes = targetBoxes
	return nil
}

func (o *Order) setUnitsPerBox(unitsPerBox *int) error {
	if unitsPerBox != nil && *unitsPerBox < 0 {
		return errs.NewValueIsInvalidErrorWithCause("units per box", fmt.Errorf("%d is negative", *unitsPerBox))
	}
	o.unitsPerBox = unitsPerBox
	return nil
}

func (o *Order) setRepercap(enabled bool, initialCut *int) error {
	if enabled && initialCut == nil {
		return errs.NewValueIsRequiredError("initial cut number")
	}
	if initialCut != nil && *initialCut < 0 {
		return errs.NewValueIsInvalidErrorWithCause("initial cut number", fmt.Errorf("%d is negative", *initialCut))
	}
	if initialCut != nil && *initialCut > MaxCount {
		return errs.NewValueIsOutOfRangeError("initial cut number", *initialCut, 0, MaxCount)
	}
	o.repercap = Repercap{Enabled: enabled, InitialCut: initialCut}
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPausedMinutes(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("paused minutes", fmt.Errorf("%d is negative", minutes))
	}
	o.pausedMinutes = minutes
	return nil
}

func (o *Order) setCounters(c Counters) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.counters = c
	return nil
}
