// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lcstate describes the device lifecycle states that gate which OTP
// configuration values the boot ROM applies.
package lcstate

import (
	"fmt"
	"strings"
)

// State is a device lifecycle state.
type State uint8

const (
	// Unknown is the zero value and is never a legal input.
	Unknown State = iota
	Test
	Dev
	Prod
	ProdEnd
	Rma
)

var stateNames = map[State]string{
	Test:    "Test",
	Dev:     "Dev",
	Prod:    "Prod",
	ProdEnd: "ProdEnd",
	Rma:     "Rma",
}

// States returns every legal lifecycle state.
func States() []State {
	return []State{Test, Dev, Prod, ProdEnd, Rma}
}

// Valid reports whether s is one of the legal lifecycle states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Parse converts a state name into a State. The match is case-insensitive
// and ignores '_' and '-', so "prod_end", "PROD-END" and "ProdEnd" are
// equivalent.
func Parse(s string) (State, error) {
	normalized := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for state, name := range stateNames {
		if strings.ToLower(name) == normalized {
			return state, nil
		}
	}
	return Unknown, &ErrUnknownState{Name: s}
}

// UnmarshalFlag implements flags.Unmarshaler.
func (s *State) UnmarshalFlag(value string) error {
	state, err := Parse(value)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// ErrUnknownState means the lifecycle state is not one of the legal values.
type ErrUnknownState struct {
	Name  string
	State State
}

func (err *ErrUnknownState) Error() string {
	if err.Name != "" {
		return fmt.Sprintf("unknown lifecycle state: '%s'", err.Name)
	}
	return fmt.Sprintf("unknown lifecycle state: %v", err.State)
}
