package http

import (
	"bytes"
	"encoding/json"
	"fmt"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/order"
)

// numberOrString accepts 24, "24" or null and keeps the text form. The command
// layer parses it so that both shapes report the same validation errors.
type numberOrString string

func (n *numberOrString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = numberOrString(s)
	default:
		var f json.Number
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("expected a number or a string: %w", err)
		}
		*n = numberOrString(f.String())
	}
	return nil
}

type createOrderRequest struct {
	Code              string         `json:"code"`
	ArticleCode       string         `json:"articleCode"`
	ProductName       string         `json:"productName"`
	Format            string         `json:"format"`
	ProductType       string         `json:"productType"`
	ContainerType     string         `json:"containerType"`
	UnitsPerContainer numberOrString `json:"unitsPerContainer"`
	TargetUnits       numberOrString `json:"targetUnits"`
	TargetBoxes       numberOrString `json:"targetBoxes"`
	UnitsPerBox       numberOrString `json:"unitsPerBox"`
	RepercapEnabled   bool           `json:"repercapEnabled"`
	InitialCutNumber  numberOrString `json:"initialCutNumber"`
}

func (r createOrderRequest) input() commands.CreateOrderInput {
	return commands.CreateOrderInput{
		Code:              r.Code,
		ArticleCode:       r.ArticleCode,
		ProductName:       r.ProductName,
		Format:            r.Format,
		ProductType:       r.ProductType,
		ContainerType:     r.ContainerType,
		UnitsPerContainer: string(r.UnitsPerContainer),
		TargetUnits:       string(r.TargetUnits),
		TargetBoxes:       string(r.TargetBoxes),
		UnitsPerBox:       string(r.UnitsPerBox),
		RepercapEnabled:   r.RepercapEnabled,
		InitialCutNumber:  string(r.InitialCutNumber),
	}
}

type productDetails struct {
	Format            string `json:"format"`
	ProductType       string `json:"productType"`
	ContainerType     string `json:"containerType"`
	UnitsPerContainer *int   `json:"unitsPerContainer"`
}

type updateOrderRequest struct {
	ProductName *string         `json:"productName"`
	Details     *productDetails `json:"details"`
	TargetUnits *int            `json:"targetUnits"`
	TargetBoxes *int            `json:"targetBoxes"`
	UnitsPerBox *int            `json:"unitsPerBox"`
}

func (r updateOrderRequest) update() order.DetailsUpdate {
	u := order.DetailsUpdate{
		ProductName: r.ProductName,
		TargetUnits: r.TargetUnits,
		TargetBoxes: r.TargetBoxes,
		UnitsPerBox: r.UnitsPerBox,
	}
	if r.Details != nil {
		u.Details = &order.Details{
			Format:            r.Details.Format,
			ProductType:       r.Details.ProductType,
			ContainerType:     r.Details.ContainerType,
			UnitsPerContainer: r.Details.UnitsPerContainer,
		}
	}
	return u
}

type pauseOrderRequest struct {
	Type    string `json:"type"`
	Comment string `json:"comment"`
}

type finishOrderRequest struct {
	GoodUnits        *int `json:"goodUnits"`
	BadUnits         *int `json:"badUnits"`
	RejectedUnits    *int `json:"rejectedUnits"`
	WeightScaleTotal *int `json:"weightScaleTotal"`
	FinalCutNumber   *int `json:"finalCutNumber"`
}

func (r finishOrderRequest) closing() order.ClosingInputs {
	return order.ClosingInputs{
		GoodUnits:        r.GoodUnits,
		BadUnits:         r.BadUnits,
		RejectedUnits:    r.RejectedUnits,
		WeightScaleTotal: r.WeightScaleTotal,
		FinalCutNumber:   r.FinalCutNumber,
	}
}

type adjustCounterRequest struct {
	Mode   string `json:"mode"`
	Amount int    `json:"amount"`
}

type simulateTimeRequest struct {
	Minutes *int `json:"minutes"`
}

type updatePauseRequest struct {
	Comment *string `json:"comment"`
	Type    *string `json:"type"`
}

type cleaningRequest struct {
	Description string `json:"description"`
}
