// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import "github.com/tomtom215/hubtrack/internal/models"

// nodeCredentials is the node/token pair used for node-scoped calls.
type nodeCredentials struct {
	NodeID string
	Token  string
}

// selectNode picks the entry or aggregate node of hub.
func selectNode(hub *models.HubCookie) (nodeCredentials, error) {
	if hub.Target != models.TargetAggregate {
		return nodeCredentials{NodeID: hub.NodeID, Token: hub.Token}, nil
	}
	if hub.AggregateNodeID == "" || hub.AggregateToken == "" {
		return nodeCredentials{}, ErrAggregateNode
	}
	return nodeCredentials{NodeID: hub.AggregateNodeID, Token: hub.AggregateToken}, nil
}
