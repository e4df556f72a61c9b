// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/hubtrack/internal/models"
)

// EventOptions holds flags for the event command.
type EventOptions struct {
	*RootOptions
	Type       string
	Properties string
}

// NewEventCommand creates the event command.
func NewEventCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Send a tracking event",
		Long: `Send a tracking event for the current visitor.

viewedPage events get title, url and path from the simulated page unless
--properties overrides them. Anonymous visitors are tracked by session id.

Example:
  hubctl --url https://shop.example.com/cart --title Cart event --type viewedPage
  hubctl event --type clickedLink --properties '{"url":"https://example.com"}'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvent(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "event type (required)")
	cmd.Flags().StringVarP(&opts.Properties, "properties", "p", "", "event properties as a JSON object")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runEvent(cmd *cobra.Command, opts *EventOptions) error {
	options := models.EventOptions{Type: opts.Type}
	if opts.Properties != "" {
		if err := json.Unmarshal([]byte(opts.Properties), &options.Properties); err != nil {
			return WrapExitError(ExitCommandError, "invalid --properties JSON", err)
		}
	}

	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.tracker.Event(cmd.Context(), options); err != nil {
		return WrapExitError(ExitFailure, "event failed", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"status": "sent", "type": opts.Type})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Event %s sent\n", opts.Type)
	return nil
}
