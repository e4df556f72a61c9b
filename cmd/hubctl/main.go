// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

// Command hubctl drives the tracker from the command line: configure a
// workspace, identify customers, send events, replay queued commands and
// run a local sandbox API.
package main

import (
	"fmt"
	"os"

	"github.com/tomtom215/hubtrack/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
