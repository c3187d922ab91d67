// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/counterprogram/codec"
	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/counter"
	"github.com/ava-labs/counterprogram/state"
	"github.com/ava-labs/counterprogram/utils"
)

func newAccountCmd(s *simulator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create and inspect accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newAccountCreateCmd(s),
		newAccountGetCmd(s),
	)
	return cmd
}

func newAccountCreateCmd(s *simulator) *cobra.Command {
	var (
		owner string
		idStr string
		size  int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Allocate a zero-filled account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ownerID, err := parseID(owner, nil)
			if err != nil {
				return err
			}
			var id ids.ID
			if len(idStr) > 0 {
				id, err = parseID(idStr, nil)
			} else {
				id, err = utils.GenerateRandomID()
			}
			if err != nil {
				return err
			}
			account, err := s.createAccount(cmd.Context(), id, ownerID, size)
			if err != nil {
				return err
			}
			utils.Outf("{{green}}created account:{{/}} %s\n", account.ID)
			printAccount(account)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", consts.Name, "owning program id, or \"counter\"")
	cmd.Flags().StringVar(&idStr, "id", "", "account id (random when empty)")
	cmd.Flags().IntVar(&size, "size", counter.AccountSize, "data size in bytes")
	return cmd
}

func newAccountGetCmd(s *simulator) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], nil)
			if err != nil {
				return err
			}
			account, err := s.getAccount(cmd.Context(), id)
			if err != nil {
				return err
			}
			printAccount(account)
			return nil
		},
	}
}

func printAccount(account *state.Account) {
	owner := account.Owner.String()
	if account.Owner == counter.ProgramID {
		owner += " (" + consts.Name + ")"
	}
	utils.Outf("{{yellow}}id:{{/}} %s\n", account.ID)
	utils.Outf("{{yellow}}owner:{{/}} %s\n", owner)
	utils.Outf("{{yellow}}size:{{/}} %d\n", len(account.Data))
	utils.Outf("{{yellow}}data:{{/}} %s\n", codec.ToHex(account.Data))
	if c, err := counter.Decode(account.Data); err == nil {
		utils.Outf("{{yellow}}count:{{/}} %d\n", c.Count)
	}
}
