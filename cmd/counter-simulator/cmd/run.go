// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/counterprogram/codec"
	"github.com/ava-labs/counterprogram/counter"
	"github.com/ava-labs/counterprogram/host"
	"github.com/ava-labs/counterprogram/utils"
)

type runCmd struct {
	s    *simulator
	plan *Plan

	// maps step_N to the account the step produced
	outputs map[string]ids.ID
	out     io.Writer
}

func newRunCmd(s *simulator) *cobra.Command {
	var printMetrics bool
	cmd := &cobra.Command{
		Use:   "run <plan.yaml|->",
		Short: "Run a simulation plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRun(s, cmd.OutOrStdout())
			if err := r.Init(args[0], cmd.InOrStdin()); err != nil {
				return err
			}
			if err := r.Run(cmd.Context()); err != nil {
				return err
			}
			if printMetrics {
				return dumpMetrics(s.gatherer)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printMetrics, "metrics", false, "print runtime metrics after the plan")
	return cmd
}

func newRun(s *simulator, out io.Writer) *runCmd {
	return &runCmd{
		s:       s,
		outputs: make(map[string]ids.ID),
		out:     out,
	}
}

// Init loads the plan from [path], or from [stdin] when [path] is "-".
func (c *runCmd) Init(path string, stdin io.Reader) error {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	plan, err := unmarshalPlan(b)
	if err != nil {
		return err
	}
	if err := plan.Verify(); err != nil {
		return err
	}
	c.plan = plan
	return nil
}

// Run executes every step in order and prints one response per step. A step
// that fails is reported and the plan continues; an unmet requirement stops
// the plan.
func (c *runCmd) Run(ctx context.Context) error {
	c.s.log.Info("simulation",
		zap.String("name", c.plan.Name),
		zap.String("plan", c.plan.Description),
		zap.Int("steps", len(c.plan.Steps)),
	)

	for i := range c.plan.Steps {
		step := &c.plan.Steps[i]
		c.s.log.Info("simulation",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("kind", string(step.Kind)),
		)

		resp := newResponse(i, step.Kind)
		id, err := c.runStep(ctx, step, resp)
		if err != nil {
			resp.Reason = host.FailureReason(err)
			resp.Error = err.Error()
		}
		if id != ids.Empty {
			resp.Account = id.String()
			c.outputs[fmt.Sprintf("%s%d", stepPrefix, i)] = id
		}
		if err := resp.Print(c.out); err != nil {
			return err
		}
		if err := checkRequire(step.Require, resp); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// runStep returns the account the step operated on, even when the step
// fails.
func (c *runCmd) runStep(ctx context.Context, step *Step, resp *Response) (ids.ID, error) {
	switch step.Kind {
	case CreateAccount:
		return c.createAccount(ctx, step, resp)
	case Invoke:
		accounts, err := parseIDs(step.Accounts, c.outputs)
		if err != nil {
			return ids.Empty, err
		}
		payload, err := codec.LoadHex(step.Payload, -1)
		if err != nil {
			return ids.Empty, err
		}
		var target ids.ID
		if len(accounts) > 0 {
			target = accounts[0]
		}
		result, err := c.s.invoke(ctx, accounts, payload, step.Readonly)
		if result != nil {
			resp.Logs = result.Logs
		}
		if err != nil {
			return target, err
		}
		if len(accounts) > 0 {
			return target, c.readCount(ctx, target, resp)
		}
		return target, nil
	case Get:
		id, err := parseID(step.Accounts[0], c.outputs)
		if err != nil {
			return ids.Empty, err
		}
		return id, c.readCount(ctx, id, resp)
	default:
		return ids.Empty, fmt.Errorf("%w: %q", ErrInvalidStepKind, step.Kind)
	}
}

func (c *runCmd) createAccount(ctx context.Context, step *Step, resp *Response) (ids.ID, error) {
	owner := counter.ProgramID
	if len(step.Owner) > 0 {
		var err error
		owner, err = parseID(step.Owner, c.outputs)
		if err != nil {
			return ids.Empty, err
		}
	}
	size := counter.AccountSize
	if step.Size != nil {
		size = *step.Size
	}

	var (
		id  ids.ID
		err error
	)
	if len(step.ID) > 0 {
		id, err = parseID(step.ID, c.outputs)
	} else {
		id, err = utils.GenerateRandomID()
	}
	if err != nil {
		return ids.Empty, err
	}
	account, err := c.s.createAccount(ctx, id, owner, size)
	if err != nil {
		return id, err
	}
	if ct, err := counter.Decode(account.Data); err == nil {
		resp.setCount(ct.Count)
	}
	return id, nil
}

func (c *runCmd) readCount(ctx context.Context, id ids.ID, resp *Response) error {
	account, err := c.s.getAccount(ctx, id)
	if err != nil {
		return err
	}
	if ct, err := counter.Decode(account.Data); err == nil {
		resp.setCount(ct.Count)
	}
	return nil
}

func checkRequire(req *Require, resp *Response) error {
	if req == nil {
		return nil
	}
	if len(req.Error) > 0 {
		reason := resp.Reason
		if len(reason) == 0 {
			reason = reasonNone
		}
		if reason != req.Error {
			return fmt.Errorf("%w: expected error %q, got %q", ErrAssertionFailed, req.Error, reason)
		}
	}
	if req.Count != nil {
		if resp.Count == nil {
			return fmt.Errorf("%w: %w", ErrAssertionFailed, ErrMissingCountData)
		}
		ok, err := validateAssertion(uint64(*resp.Count), req.Count)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: count %d %s %s", ErrAssertionFailed, *resp.Count, req.Count.Operator, req.Count.Value)
		}
	}
	return nil
}

func dumpMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				utils.Outf("{{yellow}}%s{{/}}%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				utils.Outf("{{yellow}}%s{{/}}%s %g\n", mf.GetName(), labels, m.GetGauge().GetValue())
			}
		}
	}
	return nil
}

