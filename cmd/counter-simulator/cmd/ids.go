// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/counter"
)

const stepPrefix = "step_"

// parseID resolves [s] to an ID. [s] is either the name of the counter
// program, a synthetic `step_N` identifier produced by a plan step, or a
// cb58 encoded ID.
func parseID(s string, outputs map[string]ids.ID) (ids.ID, error) {
	if s == consts.Name {
		return counter.ProgramID, nil
	}
	if strings.HasPrefix(s, stepPrefix) {
		id, ok := outputs[s]
		if !ok {
			return ids.Empty, fmt.Errorf("%w: %s", ErrStepNotFound, s)
		}
		return id, nil
	}
	id, err := ids.FromString(s)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w %q: %w", ErrInvalidID, s, err)
	}
	return id, nil
}

func parseIDs(ss []string, outputs map[string]ids.ID) ([]ids.ID, error) {
	r := make([]ids.ID, len(ss))
	for i, s := range ss {
		id, err := parseID(s, outputs)
		if err != nil {
			return nil, err
		}
		r[i] = id
	}
	return r, nil
}
