// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan      = errors.New("invalid plan")
	ErrInvalidStep      = errors.New("invalid step")
	ErrInvalidStepKind  = errors.New("invalid step kind")
	ErrInvalidOperator  = errors.New("invalid operator")
	ErrInvalidID        = errors.New("invalid id")
	ErrStepNotFound     = errors.New("step output not found")
	ErrAssertionFailed  = errors.New("assertion failed")
	ErrNotInitialized   = errors.New("simulator not initialized")
	ErrMissingCountData = errors.New("account does not hold a counter")
)
