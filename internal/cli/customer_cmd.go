// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/hubtrack/internal/models"
)

// CustomerOptions holds flags for the customer command.
type CustomerOptions struct {
	*RootOptions
	Data string
	File string
}

// NewCustomerCommand creates the customer command.
func NewCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CustomerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Identify the visitor as a customer",
		Long: `Identify the visitor as a customer.

The customer is created or updated remotely when its data changed since
the last call, and the current session is bound to it. Without --data or
--file (or with "null") the identity is reset and a new session starts.

Example:
  hubctl customer --data '{"externalId":"ada@example.com","base":{"firstName":"Ada"}}'
  hubctl customer --file customer.json
  hubctl customer`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomer(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Data, "data", "", "customer data as JSON")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read customer data from a JSON file")
	cmd.MarkFlagsMutuallyExclusive("data", "file")

	return cmd
}

// customerData returns the parsed payload, or nil for a reset.
func (o *CustomerOptions) customerData() (*models.CustomerData, error) {
	raw := []byte(o.Data)
	if o.File != "" {
		content, err := os.ReadFile(o.File)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("read %s", o.File), err)
		}
		raw = content
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var data models.CustomerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid customer JSON", err)
	}
	return &data, nil
}

func runCustomer(cmd *cobra.Command, opts *CustomerOptions) error {
	data, err := opts.customerData()
	if err != nil {
		return err
	}

	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.tracker.Customer(cmd.Context(), data); err != nil {
		return WrapExitError(ExitFailure, "customer failed", err)
	}
	return printSessionState(cmd.OutOrStdout(), opts.RootOptions, s)
}
