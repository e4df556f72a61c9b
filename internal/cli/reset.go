// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the visitor's identity",
		Long: `Forget the visitor's identity.

Without flags this is "customer" with no data: the customer id and hash are
dropped and a new session id is issued, keeping the workspace settings.
--all deletes both cookies.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()

			if all {
				if err := s.store.ClearHub(); err != nil {
					return WrapExitError(ExitFailure, "clear cookies", err)
				}
				if err := s.store.ClearUTM(); err != nil {
					return WrapExitError(ExitFailure, "clear cookies", err)
				}
			} else if err := s.tracker.Customer(cmd.Context(), nil); err != nil {
				return WrapExitError(ExitFailure, "reset failed", err)
			}
			return printSessionState(cmd.OutOrStdout(), rootOpts, s)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete both cookies")
	return cmd
}
