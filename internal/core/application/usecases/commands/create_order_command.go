package commands

import (
	"errors"
	"strconv"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderInput carries the raw form values of a new order. Numeric fields are
// strings because operators type them in; empty optional fields mean "not given".
type CreateOrderInput struct {
	Code        string
	ArticleCode string
	ProductName string

	Format            string
	ProductType       string
	ContainerType     string
	UnitsPerContainer string

	TargetUnits string
	TargetBoxes string
	UnitsPerBox string

	RepercapEnabled  bool
	InitialCutNumber string
}

// CreateOrderCommand represents a request to register a new production order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), CreateOrderInput{
//	    Code:        "OF-2025-0042",
//	    ArticleCode: "ART-118",
//	    ProductName: "Gel 500ml",
//	    TargetUnits: "4000",
//	    TargetBoxes: "167",
//	    UnitsPerBox: "24",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	params  order.Params

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates and parses the input. Every problem is reported
// in the joined error, not only the first one.
func NewCreateOrderCommand(orderID kernel.UUID, in CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	targetUnits, targetUnitsErr := parseRequiredInt("target units", in.TargetUnits)
	targetBoxes, targetBoxesErr := parseRequiredInt("target boxes", in.TargetBoxes)
	unitsPerBox, unitsPerBoxErr := parseOptionalInt("units per box", in.UnitsPerBox)
	unitsPerContainer, unitsPerContainerErr := parseOptionalInt("units per container", in.UnitsPerContainer)
	initialCut, initialCutErr := parseOptionalInt("initial cut number", in.InitialCutNumber)

	if err := errors.Join(
		cmd.setOrderID(orderID),
		requiredString("code", in.Code),
		requiredString("article code", in.ArticleCode),
		requiredString("product name", in.ProductName),
		targetUnitsErr,
		targetBoxesErr,
		unitsPerBoxErr,
		unitsPerContainerErr,
		initialCutErr,
		minValue("target units", targetUnitsErr, targetUnits, 1),
		minValue("target boxes", targetBoxesErr, targetBoxes, 0),
		minOptional("units per box", unitsPerBox, 0),
		minOptional("units per container", unitsPerContainer, 0),
		repercapInitialCut(in.RepercapEnabled, initialCut, initialCutErr),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.params = order.Params{
		Code:        strings.TrimSpace(in.Code),
		ArticleCode: strings.TrimSpace(in.ArticleCode),
		ProductName: strings.TrimSpace(in.ProductName),
		Details: order.Details{
			Format:            strings.TrimSpace(in.Format),
			ProductType:       strings.TrimSpace(in.ProductType),
			ContainerType:     strings.TrimSpace(in.ContainerType),
			UnitsPerContainer: unitsPerContainer,
		},
		TargetUnits:      targetUnits,
		TargetBoxes:      targetBoxes,
		UnitsPerBox:      unitsPerBox,
		RepercapEnabled:  in.RepercapEnabled,
		InitialCutNumber: initialCut,
	}
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Params returns the parsed order fields.
func (c CreateOrderCommand) Params() order.Params {
	return c.params
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func requiredString(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func parseRequiredInt(name, raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}
	return parseInt(name, raw)
}

func parseOptionalInt(name, raw string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parseInt(name, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseInt(name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

// minValue only checks values that parsed.
func minValue(name string, parseErr error, value, minimum int) error {
	if parseErr != nil || value >= minimum {
		return nil
	}
	return errs.NewValueIsOutOfRangeError(name, value, minimum, "unbounded")
}

func minOptional(name string, value *int, minimum int) error {
	if value == nil {
		return nil
	}
	return minValue(name, nil, *value, minimum)
}

func repercapInitialCut(enabled bool, initialCut *int, parseErr error) error {
	if !enabled || parseErr != nil || initialCut != nil {
		return nil
	}
	return errs.NewValueIsRequiredError("initial cut number")
}
