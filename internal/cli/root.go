// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	JarPath    string
	APIURL     string
	PageURL    string
	Title      string
	Referrer   string
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the hubctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hubctl",
		Short: "hubctl - customer identity and event tracking from the command line",
		Long: `hubctl drives the tracker as a headless page.

Cookies persist in a BadgerDB jar between runs, so a sequence of commands
behaves like one visitor browsing a site:

  hubctl --jar ./visitor config --token t --workspace w --node n
  hubctl --jar ./visitor --url 'https://shop.example.com/?utm_source=mail' event --type viewedPage
  hubctl --jar ./visitor customer --data '{"externalId":"ada@example.com"}'
  hubctl --jar ./visitor show`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: hubtrack.yaml or $HUBTRACK_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.JarPath, "jar", "", "cookie jar directory (overrides jar.path; empty keeps cookies in memory)")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", "", "API base URL (overrides api.base_url)")
	cmd.PersistentFlags().StringVar(&opts.PageURL, "url", "about:blank", "location of the simulated page")
	cmd.PersistentFlags().StringVar(&opts.Title, "title", "", "document title of the simulated page")
	cmd.PersistentFlags().StringVar(&opts.Referrer, "referrer", "", "document referrer of the simulated page")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewCustomerCommand(opts))
	cmd.AddCommand(NewEventCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewSandboxCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
