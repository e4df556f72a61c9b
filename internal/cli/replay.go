// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/hubtrack/internal/dispatch"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <queue.json>",
		Short: "Replay a queue of pending commands",
		Long: `Replay a queue of commands recorded before the tracker loaded.

The file holds a JSON array of commands, each either ["method", options]
or {"method": ..., "options": ...}. Commands run in order; a failing
command is reported and the replay continues. Use "-" to read stdin.

Example:
  hubctl replay queue.json
  echo '[["event",{"type":"viewedPage"}]]' | hubctl replay -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func readQueue(cmd *cobra.Command, path string) ([]dispatch.Command, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("read %s", path), err)
	}

	queue, err := dispatch.ParseQueue(data)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid queue", err)
	}
	return queue, nil
}

func runReplay(cmd *cobra.Command, opts *RootOptions, path string) error {
	queue, err := readQueue(cmd, path)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.close()

	d := dispatch.New(s.tracker, s.cfg.ObjectName)
	drainErr := d.Drain(cmd.Context(), queue)
	d.Wait()

	if opts.Format != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "Replayed %d commands on %s\n", len(queue), d.Name())
	}
	if err := printSessionState(cmd.OutOrStdout(), opts, s); err != nil {
		return err
	}
	if drainErr != nil {
		return WrapExitError(ExitFailure, "replay failed", drainErr)
	}
	return nil
}
