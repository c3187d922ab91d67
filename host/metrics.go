// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/counterprogram/program"
	"github.com/ava-labs/counterprogram/state"
)

const reasonLabel = "reason"

// failure reasons reported by the failures counter, checked in order
var failureReasons = []struct {
	err    error
	reason string
}{
	{program.ErrMissingAccount, "missing_account"},
	{program.ErrIncorrectOwner, "incorrect_owner"},
	{program.ErrDecode, "decode"},
	{program.ErrEncode, "encode"},
	{ErrProgramPanicked, "panic"},
	{ErrProgramNotFound, "program_not_found"},
	{state.ErrAccountNotFound, "account_not_found"},
	{ErrExternalAccountModified, "external_account_modified"},
	{ErrReadonlyAccountModified, "readonly_account_modified"},
	{ErrAccountResized, "account_resized"},
	{ErrOwnerModified, "owner_modified"},
	{ErrTooManyAccounts, "too_many_accounts"},
	{ErrPayloadTooLarge, "payload_too_large"},
	{ErrAccountExists, "account_exists"},
	{ErrInvalidSize, "invalid_size"},
}

// FailureReason classifies err by the label it is reported under.
func FailureReason(err error) string {
	for _, r := range failureReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "other"
}

type metrics struct {
	invocations     prometheus.Counter
	failures        *prometheus.CounterVec
	accountsCreated prometheus.Counter
	accountsWritten prometheus.Counter

	executeTime metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	executeTime, err := metric.NewAverager(
		"runtime_execute",
		"time spent executing invocations",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		executeTime: executeTime,
		invocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "invocations",
			Help:      "number of invocations executed",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "failures",
			Help:      "number of invocations that failed and were discarded",
		}, []string{reasonLabel}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "accounts_created",
			Help:      "number of accounts allocated",
		}),
		accountsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "accounts_written",
			Help:      "number of account writes committed by invocations",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.invocations),
		r.Register(m.failures),
		r.Register(m.accountsCreated),
		r.Register(m.accountsWritten),
	)
	return m, errs.Err
}
