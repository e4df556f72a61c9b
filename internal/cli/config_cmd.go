// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/hubtrack/internal/models"
)

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	*RootOptions
	Token          string
	WorkspaceID    string
	NodeID         string
	Target         string
	Context        string
	ContextInfo    string
	AggregateNode  string
	AggregateToken string
	Debug          bool
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure the tracker for a workspace",
		Long: `Configure the tracker for a workspace and write the Hub cookie.

Flags that are not given keep the value already stored in the cookie.
Changing the token starts a new visitor: the session id is regenerated and
the known customer is forgotten. UTM parameters and clabId in --url are
picked up as they would be on a page load.

Example:
  hubctl config --token t --workspace w --node n --context-info '{"lang":"it"}'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "API token (required)")
	cmd.Flags().StringVar(&opts.WorkspaceID, "workspace", "", "workspace id (required)")
	cmd.Flags().StringVar(&opts.NodeID, "node", "", "entry node id (required)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "node used for API calls (ENTRY|AGGREGATE)")
	cmd.Flags().StringVar(&opts.Context, "context", "", "event context (default WEB)")
	cmd.Flags().StringVar(&opts.ContextInfo, "context-info", "", "event context info as a JSON object")
	cmd.Flags().StringVar(&opts.AggregateNode, "aggregate-node", "", "aggregate node id")
	cmd.Flags().StringVar(&opts.AggregateToken, "aggregate-token", "", "aggregate node token")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "log operation failures")

	return cmd
}

// configOptions converts the flags into tracker options. Unchanged flags
// stay unset so the stored cookie wins.
func (o *ConfigOptions) configOptions(cmd *cobra.Command) (models.ConfigOptions, error) {
	out := models.ConfigOptions{
		Token:           o.Token,
		WorkspaceID:     o.WorkspaceID,
		NodeID:          o.NodeID,
		Target:          models.Target(o.Target),
		AggregateNodeID: o.AggregateNode,
		AggregateToken:  o.AggregateToken,
		Context:         o.Context,
	}
	if o.ContextInfo != "" {
		if err := json.Unmarshal([]byte(o.ContextInfo), &out.ContextInfo); err != nil {
			return out, WrapExitError(ExitCommandError, "invalid --context-info JSON", err)
		}
	}
	if cmd.Flags().Changed("debug") {
		debug := o.Debug
		out.Debug = &debug
	}
	return out, nil
}

func runConfig(cmd *cobra.Command, opts *ConfigOptions) error {
	options, err := opts.configOptions(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.tracker.Config(cmd.Context(), options); err != nil {
		return WrapExitError(ExitFailure, "config failed", err)
	}
	return printSessionState(cmd.OutOrStdout(), opts.RootOptions, s)
}
