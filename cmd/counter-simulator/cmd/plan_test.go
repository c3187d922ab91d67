// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalPlan(t *testing.T) {
	require := require.New(t)

	plan, err := unmarshalPlan([]byte(`
name: basic
description: increment once
steps:
  - description: create
    kind: create_account
    size: 4
  - kind: invoke
    accounts: [step_0]
    payload: "0x01"
    require:
      error: none
      count:
        operator: "=="
        value: "1"
`))
	require.NoError(err)
	require.NoError(plan.Verify())
	require.Equal("basic", plan.Name)
	require.Len(plan.Steps, 2)
	require.Equal(CreateAccount, plan.Steps[0].Kind)
	require.Equal(4, *plan.Steps[0].Size)
	require.Equal([]string{"step_0"}, plan.Steps[1].Accounts)
	require.Equal(reasonNone, plan.Steps[1].Require.Error)
	require.Equal(NumericEq, plan.Steps[1].Require.Count.Operator)

	_, err = unmarshalPlan([]byte("steps:\n  - kind: invoke\n    unknown: 1\n"))
	require.ErrorIs(err, ErrInvalidPlan)
}

func TestPlanVerify(t *testing.T) {
	negative := -1
	tests := []struct {
		name string
		plan Plan
		err  error
	}{
		{
			name: "no steps",
			plan: Plan{},
			err:  ErrInvalidPlan,
		},
		{
			name: "unknown kind",
			plan: Plan{Steps: []Step{{Kind: "transfer"}}},
			err:  ErrInvalidStepKind,
		},
		{
			name: "get without account",
			plan: Plan{Steps: []Step{{Kind: Get}}},
			err:  ErrInvalidStep,
		},
		{
			name: "create with accounts",
			plan: Plan{Steps: []Step{{Kind: CreateAccount, Accounts: []string{"step_0"}}}},
			err:  ErrInvalidStep,
		},
		{
			name: "negative size",
			plan: Plan{Steps: []Step{{Kind: CreateAccount, Size: &negative}}},
			err:  ErrInvalidStep,
		},
		{
			name: "invoke with owner",
			plan: Plan{Steps: []Step{{Kind: Invoke, Owner: "counter"}}},
			err:  ErrInvalidStep,
		},
		{
			name: "bad operator",
			plan: Plan{Steps: []Step{{
				Kind:    Invoke,
				Require: &Require{Count: &ResultAssertion{Operator: "~", Value: "1"}},
			}}},
			err: ErrInvalidOperator,
		},
		{
			name: "invoke without accounts",
			plan: Plan{Steps: []Step{{Kind: Invoke}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.plan.Verify(), tt.err)
		})
	}
}

func TestValidateAssertion(t *testing.T) {
	tests := []struct {
		op       Operator
		value    string
		actual   uint64
		expected bool
	}{
		{NumericGt, "1", 2, true},
		{NumericGt, "2", 2, false},
		{NumericLt, "3", 2, true},
		{NumericGe, "2", 2, true},
		{NumericLe, "1", 2, false},
		{NumericEq, "2", 2, true},
		{NumericNe, "2", 2, false},
	}
	for _, tt := range tests {
		ok, err := validateAssertion(tt.actual, &ResultAssertion{Operator: tt.op, Value: tt.value})
		require.NoError(t, err)
		require.Equal(t, tt.expected, ok, "%d %s %s", tt.actual, tt.op, tt.value)
	}

	_, err := validateAssertion(1, &ResultAssertion{Operator: NumericEq, Value: "-1"})
	require.Error(t, err)
	_, err = validateAssertion(1, &ResultAssertion{Operator: "~", Value: "1"})
	require.ErrorIs(t, err, ErrInvalidOperator)
}

func TestResponsePrint(t *testing.T) {
	require := require.New(t)

	resp := newResponse(3, Invoke)
	resp.setCount(7)
	resp.Logs = []string{"line"}

	var buf bytes.Buffer
	require.NoError(resp.Print(&buf))

	var decoded Response
	require.NoError(json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(*resp, decoded)
}
