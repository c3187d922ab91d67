// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/counterprogram/codec"
	"github.com/ava-labs/counterprogram/host"
	"github.com/ava-labs/counterprogram/utils"
)

func newInvokeCmd(s *simulator) *cobra.Command {
	var (
		payload  string
		readonly bool
	)
	cmd := &cobra.Command{
		Use:   "invoke <account-id>...",
		Short: "Invoke the counter program",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := parseIDs(args, nil)
			if err != nil {
				return err
			}
			payloadBytes, err := codec.LoadHex(payload, -1)
			if err != nil {
				return err
			}
			result, err := s.invoke(cmd.Context(), accounts, payloadBytes, readonly)
			printResult(result, err)
			if err != nil {
				return err
			}
			if len(accounts) > 0 {
				account, err := s.getAccount(cmd.Context(), accounts[0])
				if err != nil {
					return err
				}
				printAccount(account)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&payload, "payload", "", "hex encoded payload")
	cmd.Flags().BoolVar(&readonly, "readonly", false, "pass every account as readonly")
	return cmd
}

func printResult(result *host.Result, err error) {
	if result != nil {
		for _, line := range result.Logs {
			utils.Outf("{{cyan}}program log:{{/}} %s\n", line)
		}
	}
	if err != nil {
		utils.Outf("{{red}}invocation failed:{{/}} %s\n", host.FailureReason(err))
		return
	}
	utils.Outf("{{green}}invocation committed:{{/}} changed [%s]\n", strings.Join(utils.Map(ids.ID.String, result.Changed), ", "))
}
