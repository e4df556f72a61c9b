// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/metrics"
	"github.com/tomtom215/hubtrack/internal/models"
)

// Customer action labels.
const (
	actionCreate    = "create"
	actionUpdate    = "update"
	actionReconcile = "reconcile"
	actionStore     = "store"
	actionReset     = "reset"
)

// Customer reconciles the visitor's local identity with the remote
// customer record. A nil data resets the identity without any remote call.
//
// No cookie is written unless every remote step succeeds.
func (t *Tracker) Customer(ctx context.Context, data *models.CustomerData) error {
	hub, err := t.cookies.GetHub(nil)
	if err != nil {
		return missingIdentity(err)
	}

	if data == nil {
		return t.resetIdentity(ctx, hub)
	}

	newHash, err := hashCustomer(data)
	if err != nil {
		return err
	}
	if newHash == hub.Hash {
		metrics.CustomerNoop.Inc()
		t.trace(ctx, hub).Msg("Customer data unchanged")
		return nil
	}

	node, err := selectNode(hub)
	if err != nil {
		return err
	}

	run := &customerRun{t: t, hub: hub, node: node, data: data}
	customerID, err := run.execute(ctx)
	if err != nil {
		return err
	}

	if err := t.storeIdentity(customerID, newHash, run.resetSID); err != nil {
		return err
	}

	t.trace(ctx, hub).
		Str("customer_id", customerID).
		Bool("session_reset", run.resetSID != "").
		Msg("Customer identity stored")
	return nil
}

// resetIdentity starts a new anonymous session.
func (t *Tracker) resetIdentity(ctx context.Context, hub *models.HubCookie) error {
	hub.SID = t.newID()
	hub.CustomerID = ""
	hub.Hash = ""

	err := t.cookies.SetHub(hub, nil)
	metrics.RecordCustomerAction(actionReset, err)
	if err != nil {
		return classify("reset identity", err)
	}
	t.trace(ctx, hub).Str("sid", logging.SanitizeSessionID(hub.SID)).Msg("Customer identity reset")
	return nil
}

// storeIdentity merges the resolved identity into a fresh read of the Hub
// cookie and writes it.
func (t *Tracker) storeIdentity(customerID, hash, resetSID string) error {
	hub, err := t.cookies.GetHub(nil)
	if err != nil {
		metrics.RecordCustomerAction(actionStore, err)
		return missingIdentity(err)
	}
	hub.CustomerID = customerID
	hub.Hash = hash
	if resetSID != "" {
		hub.SID = resetSID
	}

	err = t.cookies.SetHub(hub, nil)
	metrics.RecordCustomerAction(actionStore, err)
	if err != nil {
		return classify("store identity", err)
	}
	return nil
}

// customerRun is one planned customer sequence. resetSID holds the new
// session id of an identity hand-off until the sequence is stored.
type customerRun struct {
	t        *Tracker
	hub      *models.HubCookie
	node     nodeCredentials
	data     *models.CustomerData
	resetSID string
}

// execute runs the remote steps for the (data.id, customerId) branch and
// returns the resolved customer id.
func (r *customerRun) execute(ctx context.Context) (string, error) {
	dataID, storedID := r.data.ID, r.hub.CustomerID

	switch {
	case dataID == "" && storedID == "":
		id, err := r.create(ctx)
		if err != nil {
			return "", err
		}
		if err := r.reconcile(ctx, id); err != nil {
			return "", err
		}
		return id, nil

	case dataID == "":
		return r.update(ctx, storedID)

	case storedID == "":
		if err := r.reconcile(ctx, dataID); err != nil {
			return "", err
		}
		return r.update(ctx, dataID)

	case dataID == storedID:
		return r.update(ctx, dataID)

	default:
		if !r.data.HasUpdatableFields() {
			metrics.CustomerConflicts.Inc()
			return "", fmt.Errorf("%w: have %s, got %s", ErrConflict, storedID, dataID)
		}
		r.resetSID = r.t.newID()
		if err := r.reconcile(ctx, dataID); err != nil {
			return "", err
		}
		return r.update(ctx, dataID)
	}
}

// create posts a new customer bound to the selected node.
func (r *customerRun) create(ctx context.Context) (string, error) {
	body := models.NewCreateCustomerRequest(r.data, r.node.NodeID)
	resp, err := r.t.api.Post(ctx, customersPath(r.hub.WorkspaceID), body, r.node.Token)
	if err != nil {
		metrics.RecordCustomerAction(actionCreate, err)
		return "", classify("create customer", err)
	}

	id, err := decodeCustomerID(resp)
	metrics.RecordCustomerAction(actionCreate, err)
	if err != nil {
		return "", err
	}
	return id, nil
}

// update patches customerID with the full data payload. It is skipped
// when data carries only an id.
func (r *customerRun) update(ctx context.Context, customerID string) (string, error) {
	if !r.data.HasUpdatableFields() {
		return customerID, nil
	}
	_, err := r.t.api.Patch(ctx, customerPath(r.hub.WorkspaceID, customerID), r.data, r.node.Token)
	metrics.RecordCustomerAction(actionUpdate, err)
	if err != nil {
		return "", classify("update customer", err)
	}
	return customerID, nil
}

// reconcile binds the current session id to customerID. The sid is read
// at call time: a hand-off uses the freshly generated one, otherwise the
// Hub cookie is read again.
func (r *customerRun) reconcile(ctx context.Context, customerID string) error {
	sid := r.resetSID
	if sid == "" {
		hub, err := r.t.cookies.GetHub(nil)
		if err != nil {
			metrics.RecordCustomerAction(actionReconcile, err)
			return missingIdentity(err)
		}
		sid = hub.SID
	}

	_, err := r.t.api.Post(ctx, sessionsPath(r.hub.WorkspaceID, customerID), models.SessionBinding{Value: sid}, r.node.Token)
	metrics.RecordCustomerAction(actionReconcile, err)
	if err != nil {
		return classify("reconcile session", err)
	}
	return nil
}

// decodeCustomerID extracts the string id of a create response.
func decodeCustomerID(resp json.RawMessage) (string, error) {
	var out struct {
		ID interface{} `json:"id"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCustomerID, err)
	}
	id, ok := out.ID.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: got %v", ErrInvalidCustomerID, out.ID)
	}
	return id, nil
}
