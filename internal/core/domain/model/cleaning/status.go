package cleaning

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Status is the lifecycle state of a cleaning order.
type Status int

const (
	Unknown Status = iota
	Created
	Started
	Finished
)

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:  "Created",
		Started:  "Started",
		Finished: "Finished",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("cleaning status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cleaning status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) Start() (Status, error) {
	if s != Created {
		return Unknown, errs.NewInvalidStateError("start cleaning", s.String())
	}
	return Started, nil
}

func (s Status) Finish() (Status, error) {
	if s != Started {
		return Unknown, errs.NewInvalidStateError("finish cleaning", s.String())
	}
	return Finished, nil
}

func (s Status) ValidateDelete() error {
	if s != Created {
		return errs.NewInvalidStateError("delete cleaning", s.String())
	}
	return nil
}
