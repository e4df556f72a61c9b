// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

/*
Package supervisor runs the sandbox servers under a suture v4 tree.

	RootSupervisor ("hubtrack-sandbox")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService (in-memory customer-data API)
	└── EdgeSupervisor ("edge-layer")
	    └── HTTPServerService (page-facing /track endpoint)

Each layer restarts its own services with suture's backoff, so a crashing
edge server does not take the API down with it. Supervisor events are
logged through sutureslog and the zerolog slog adapter.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPServerService("fake-api", apiServer, apiAddr, 5*time.Second))
	tree.AddEdgeService(supervisor.NewHTTPServerService("track", edgeServer, edgeAddr, 5*time.Second))
	err = tree.Serve(ctx) // blocks until ctx is canceled
*/
package supervisor
