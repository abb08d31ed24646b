package order

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of a production order.
//
// State transitions:
//
//	Created ──> Started <──> Paused
//	   │           │           │
//	   └───────────┴───────────┴──> Finished
//
// Finished is terminal. Counters can only change while Started or Paused.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the initial status. The order has never been started.
	Created

	// Started means the line is producing the order. At most one order is Started.
	Started

	// Paused means the order has an open pause.
	Paused

	// Finished means metrics have been sealed. No further transitions are allowed.
	Finished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Created:  "Created",
		Started:  "Started",
		Paused:   "Paused",
		Finished: "Finished",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:  "Created",
		Started:  "Started",
		Paused:   "Paused",
		Finished: "Finished",
	}
}

// ParseStatus resolves a status name, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of Created, Started, Paused or Finished.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Start transitions to Started from Created (first start) or Paused (resume).
func (s Status) Start() (Status, error) {
	if s != Created && s != Paused {
		return Unknown, errs.NewInvalidStateError("start", s.String())
	}
	return Started, nil
}

// Pause transitions Started to Paused.
func (s Status) Pause() (Status, error) {
	if s != Started {
		return Unknown, errs.NewInvalidStateError("pause", s.String())
	}
	return Paused, nil
}

// Finish transitions any valid non-terminal status to Finished.
func (s Status) Finish() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s == Finished {
		return Unknown, errs.NewInvalidStateError("finish", s.String())
	}
	return Finished, nil
}

// ValidateCounters allows counter mutation only while Started or Paused.
func (s Status) ValidateCounters() error {
	if s != Started && s != Paused {
		return errs.NewInvalidStateError("adjust counters", s.String())
	}
	return nil
}

// ValidateEdit rejects edits of a Finished order.
func (s Status) ValidateEdit() error {
	if s == Finished {
		return errs.NewInvalidStateError("edit order", s.String())
	}
	return nil
}

// ValidateDelete allows deleting an order that never started.
func (s Status) ValidateDelete() error {
	if s != Created {
		return errs.NewInvalidStateError("delete order", s.String())
	}
	return nil
}

// IsActive reports whether the order is on the line (Started or Paused).
func (s Status) IsActive() bool {
	return s == Started || s == Paused
}
