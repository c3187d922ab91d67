// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Plan struct {
	// The name of the plan.
	Name string `yaml:"name"`
	// A description of the plan.
	Description string `yaml:"description"`
	// Steps to perform during simulation.
	Steps []Step `yaml:"steps"`
}

type StepKind string

const (
	// Allocate a zero-filled account.
	CreateAccount StepKind = "create_account"
	// Invoke the counter program over one or more accounts.
	Invoke StepKind = "invoke"
	// Read an account.
	Get StepKind = "get"
)

type Step struct {
	// Description of the step.
	Description string `yaml:"description"`
	// The operation to perform. (required)
	Kind StepKind `yaml:"kind"`

	// Account id for create_account. Random when empty.
	ID string `yaml:"id,omitempty"`
	// Owning program for create_account. Defaults to the counter program.
	Owner string `yaml:"owner,omitempty"`
	// Data size for create_account. Defaults to the counter record size.
	Size *int `yaml:"size,omitempty"`

	// Accounts passed to invoke, or the single account read by get.
	Accounts []string `yaml:"accounts,omitempty"`
	// Hex encoded invoke payload.
	Payload string `yaml:"payload,omitempty"`
	// Pass every account as readonly.
	Readonly bool `yaml:"readonly,omitempty"`

	// Define required assertions against this step.
	Require *Require `yaml:"require,omitempty"`
}

type Require struct {
	// Expected failure reason, or "none" for success. Unchecked when empty.
	Error string `yaml:"error,omitempty"`
	// Assertion against the count held by the step's account.
	Count *ResultAssertion `yaml:"count,omitempty"`
}

type ResultAssertion struct {
	// The operator to use for the assertion.
	Operator Operator `yaml:"operator"`
	// The value to compare against.
	Value string `yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	NumericEq Operator = "=="
	NumericNe Operator = "!="
)

const reasonNone = "none"

type Response struct {
	// The index of the step that generated this response.
	ID   int      `json:"id"`
	Kind StepKind `json:"kind"`
	// The account created, invoked, or read by the step.
	Account string `json:"account,omitempty"`
	// The count held by the account after the step, when it holds one.
	Count *uint32 `json:"count,omitempty"`
	// Diagnostic lines emitted by the program.
	Logs []string `json:"logs,omitempty"`
	// The failure reason and message, if the step failed.
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newResponse(id int, kind StepKind) *Response {
	return &Response{
		ID:   id,
		Kind: kind,
	}
}

func (r *Response) setCount(count uint32) {
	r.Count = &count
}

// Print writes the response to [w] as a single line of JSON.
func (r *Response) Print(w io.Writer) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	if err := yaml.UnmarshalStrict(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return &p, nil
}

// Verify checks the plan shape before any step runs.
func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		if err := step.verify(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

func (s *Step) verify() error {
	switch s.Kind {
	case CreateAccount:
		if len(s.Accounts) > 0 || len(s.Payload) > 0 || s.Readonly {
			return fmt.Errorf("%s takes no accounts, payload, or readonly", s.Kind)
		}
		if s.Size != nil && *s.Size < 0 {
			return fmt.Errorf("negative size %d", *s.Size)
		}
	case Invoke:
		if len(s.ID) > 0 || len(s.Owner) > 0 || s.Size != nil {
			return fmt.Errorf("%s takes no id, owner, or size", s.Kind)
		}
	case Get:
		if len(s.Accounts) != 1 {
			return fmt.Errorf("%s takes exactly one account", s.Kind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStepKind, s.Kind)
	}
	if s.Require != nil && s.Require.Count != nil {
		if _, err := s.Require.Count.value(); err != nil {
			return err
		}
		if !s.Require.Count.Operator.valid() {
			return fmt.Errorf("%w: %q", ErrInvalidOperator, s.Require.Count.Operator)
		}
	}
	return nil
}

func (o Operator) valid() bool {
	switch o {
	case NumericGt, NumericLt, NumericGe, NumericLe, NumericEq, NumericNe:
		return true
	default:
		return false
	}
}

func (a *ResultAssertion) value() (uint64, error) {
	return strconv.ParseUint(a.Value, 10, 64)
}

// validateAssertion reports whether [actual] satisfies [assertion].
func validateAssertion(actual uint64, assertion *ResultAssertion) (bool, error) {
	value, err := assertion.value()
	if err != nil {
		return false, err
	}

	switch assertion.Operator {
	case NumericGt:
		return actual > value, nil
	case NumericLt:
		return actual < value, nil
	case NumericGe:
		return actual >= value, nil
	case NumericLe:
		return actual <= value, nil
	case NumericEq:
		return actual == value, nil
	case NumericNe:
		return actual != value, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidOperator, assertion.Operator)
	}
}
