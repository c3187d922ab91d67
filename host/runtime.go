// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/counterprogram/codec"
	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/program"
	"github.com/ava-labs/counterprogram/state"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Runtime executes invocations against accounts stored in a [state.Database].
//
// Invocations are serialized. A failed invocation never changes storage: all
// account writes are buffered and committed in a single batch only after the
// program returns successfully and its writes pass validation.
type Runtime struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics
	db      state.Database

	lock     sync.Mutex
	programs map[ids.ID]program.Entrypoint
}

// Result describes the outcome of an executed invocation.
type Result struct {
	ProgramID ids.ID
	// Err is the error returned by the program or the host rule it violated.
	Err error
	// Logs are the diagnostic lines the program emitted.
	Logs []string
	// Changed lists the accounts whose data was committed, in invocation
	// order.
	Changed []ids.ID
	// Accessed holds the permissions the host exercised on each account.
	// Accounts the program did not change are only read.
	Accessed state.Keys
}

func (r *Result) Success() bool {
	return r.Err == nil
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
	db state.Database,
) (*Runtime, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		log:      log,
		tracer:   tracer,
		metrics:  metrics,
		db:       db,
		programs: make(map[ids.ID]program.Entrypoint),
	}, nil
}

// Deploy makes [entrypoint] executable as [programID].
func (r *Runtime) Deploy(programID ids.ID, entrypoint program.Entrypoint) error {
	if entrypoint == nil {
		return ErrNilEntrypoint
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.programs[programID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProgram, programID)
	}
	r.programs[programID] = entrypoint
	r.log.Debug("program deployed",
		zap.Stringer("programID", programID),
	)
	return nil
}

// CreateAccount allocates a zero-filled account of [size] bytes owned by
// [owner].
func (r *Runtime) CreateAccount(ctx context.Context, id ids.ID, owner ids.ID, size int) (*state.Account, error) {
	if size < 0 || size > state.MaxAccountSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	view := state.NewSimpleMutable(state.NewView(r.db))
	exists, err := state.HasAccount(ctx, view, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrAccountExists, id)
	}

	account := &state.Account{
		ID:    id,
		Owner: owner,
		Data:  make([]byte, size),
	}
	if err := state.SetAccount(ctx, view, account); err != nil {
		return nil, err
	}
	if err := view.Commit(r.db.NewBatch()); err != nil {
		return nil, err
	}
	r.metrics.accountsCreated.Inc()
	r.log.Debug("account created",
		zap.Stringer("account", id),
		zap.Stringer("owner", owner),
		zap.Int("size", size),
	)
	return account, nil
}

func (r *Runtime) GetAccount(ctx context.Context, id ids.ID) (*state.Account, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	return state.GetAccount(ctx, state.NewView(r.db), id)
}

// Execute runs [inv] and commits its account writes if it succeeds.
//
// The returned error is nil only when the writes were committed. When the
// program ran, the [Result] is returned alongside any error so callers can
// inspect the program logs.
func (r *Runtime) Execute(ctx context.Context, inv *codec.Invocation) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "Runtime.Execute", oteltrace.WithAttributes(
		attribute.Stringer("programID", inv.ProgramID),
		attribute.Int("accounts", len(inv.Accounts)),
		attribute.Int("payload", len(inv.Payload)),
	))
	defer span.End()

	r.lock.Lock()
	defer r.lock.Unlock()

	start := time.Now()
	r.metrics.invocations.Inc()
	result, err := r.execute(ctx, inv)
	r.metrics.executeTime.Observe(float64(time.Since(start)))
	if err != nil {
		reason := FailureReason(err)
		r.metrics.failures.WithLabelValues(reason).Inc()
		span.RecordError(err)
		r.log.Debug("invocation failed",
			zap.Stringer("programID", inv.ProgramID),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return result, err
	}
	r.log.Debug("invocation committed",
		zap.Stringer("programID", inv.ProgramID),
		zap.Int("changed", len(result.Changed)),
	)
	return result, nil
}

// loadedAccount tracks an account handed to a program and its state before
// the call.
type loadedAccount struct {
	info  *program.AccountInfo
	owner ids.ID
	data  []byte
}

func (r *Runtime) execute(ctx context.Context, inv *codec.Invocation) (*Result, error) {
	if len(inv.Accounts) > consts.MaxAccounts {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyAccounts, len(inv.Accounts), consts.MaxAccounts)
	}
	if len(inv.Payload) > consts.MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(inv.Payload), consts.MaxPayloadSize)
	}
	entrypoint, ok := r.programs[inv.ProgramID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, inv.ProgramID)
	}

	view := state.NewSimpleMutable(state.NewView(r.db))
	recorder := state.NewRecorder(view)
	keys := make(state.Keys, len(inv.Accounts))
	for _, meta := range inv.Accounts {
		permission := state.Read
		if meta.IsWritable {
			permission = state.Write
		}
		keys.Add(meta.ID, permission)
	}

	var (
		loaded   = make([]*loadedAccount, 0, len(keys))
		byID     = make(map[ids.ID]*loadedAccount, len(keys))
		accounts = make([]*program.AccountInfo, 0, len(inv.Accounts))
	)
	for _, meta := range inv.Accounts {
		// An account listed more than once is handed out as a single handle.
		if la, ok := byID[meta.ID]; ok {
			la.info.IsSigner = la.info.IsSigner || meta.IsSigner
			accounts = append(accounts, la.info)
			continue
		}
		account, err := state.GetAccount(ctx, recorder, meta.ID)
		if err != nil {
			return nil, err
		}
		la := &loadedAccount{
			info: &program.AccountInfo{
				ID:         account.ID,
				Owner:      account.Owner,
				Data:       account.Data,
				IsSigner:   meta.IsSigner,
				IsWritable: keys[meta.ID].Has(state.Write),
			},
			owner: account.Owner,
			data:  bytes.Clone(account.Data),
		}
		loaded = append(loaded, la)
		byID[meta.ID] = la
		accounts = append(accounts, la.info)
	}

	plog := &programLog{}
	log := plog.logger()
	err := call(entrypoint, log, inv.ProgramID, accounts, inv.Payload)
	log.Stop()

	result := &Result{
		ProgramID: inv.ProgramID,
		Logs:      plog.lines(),
		Accessed:  recorder.GetStateKeys(),
	}
	for _, line := range result.Logs {
		r.log.Debug("program log",
			zap.Stringer("programID", inv.ProgramID),
			zap.String("line", line),
		)
	}
	if err != nil {
		result.Err = err
		return result, fmt.Errorf("%w: %w", ErrProgramFailed, err)
	}

	for _, la := range loaded {
		info := la.info
		if info.Owner != la.owner {
			result.Err = fmt.Errorf("%w: %s", ErrOwnerModified, info.ID)
			return result, result.Err
		}
		if bytes.Equal(info.Data, la.data) {
			continue
		}
		switch {
		case len(info.Data) != len(la.data):
			result.Err = fmt.Errorf("%w: %s from %d to %d bytes", ErrAccountResized, info.ID, len(la.data), len(info.Data))
		case la.owner != inv.ProgramID:
			result.Err = fmt.Errorf("%w: %s owned by %s", ErrExternalAccountModified, info.ID, la.owner)
		case !keys[info.ID].Has(state.Write):
			result.Err = fmt.Errorf("%w: %s", ErrReadonlyAccountModified, info.ID)
		}
		if result.Err != nil {
			return result, result.Err
		}
		if err := state.SetAccount(ctx, recorder, &state.Account{
			ID:    info.ID,
			Owner: info.Owner,
			Data:  info.Data,
		}); err != nil {
			return result, err
		}
		result.Changed = append(result.Changed, info.ID)
	}

	if err := view.Commit(r.db.NewBatch()); err != nil {
		return result, err
	}
	r.metrics.accountsWritten.Add(float64(len(result.Changed)))
	return result, nil
}

func call(
	entrypoint program.Entrypoint,
	log logging.Logger,
	programID ids.ID,
	accounts []*program.AccountInfo,
	payload []byte,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProgramPanicked, r)
		}
	}()
	return entrypoint(log, programID, accounts, payload)
}
