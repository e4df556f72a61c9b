// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"context"
	"fmt"

	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/models"
	"github.com/tomtom215/hubtrack/internal/validation"
)

// Query parameters consulted by Config.
const (
	paramTarget      = "target"
	paramCustomerID  = "clabId"
	paramUTMSource   = "utm_source"
	paramUTMMedium   = "utm_medium"
	paramUTMTerm     = "utm_term"
	paramUTMContent  = "utm_content"
	paramUTMCampaign = "utm_campaign"
)

// Config validates opts and writes the Hub cookie.
//
// Options win over the existing cookie, which wins over defaults. A token
// different from the stored one discards the stored identity. The page's
// utm_* parameters replace the UTM cookie when utm_source is present, and a
// clabId parameter links the visitor to that customer. Link failures are
// reported through ReportError, not returned.
func (t *Tracker) Config(ctx context.Context, opts models.ConfigOptions) error {
	if verr := validation.ValidateStruct(&opts); verr != nil {
		return fmt.Errorf("%w: %w", ErrValidation, verr)
	}

	current, err := t.cookies.GetHub(&models.HubCookie{})
	if err != nil {
		return fmt.Errorf("read hub cookie: %w", err)
	}
	if current.Token != "" && current.Token != opts.Token {
		logging.Ctx(ctx).Debug().
			Str("token", logging.SanitizeToken(opts.Token)).
			Msg("Token changed, discarding stored identity")
		current = &models.HubCookie{}
	}

	hub := mergeHub(current, opts)
	if hub.SID == "" {
		hub.SID = t.newID()
	}
	if v, ok := t.page.QueryParam(paramTarget); ok {
		switch target := models.Target(v); target {
		case models.TargetEntry, models.TargetAggregate:
			hub.Target = target
		default:
			logging.Ctx(ctx).Debug().Str("target", v).Msg("Ignoring unknown target query parameter")
		}
	}

	if err := t.cookies.SetHub(hub, nil); err != nil {
		return classify("write hub cookie", err)
	}
	t.trace(ctx, hub).
		Str("workspace_id", hub.WorkspaceID).
		Str("node_id", hub.NodeID).
		Str("target", string(hub.Target)).
		Msg("Hub cookie configured")

	if err := t.captureUTM(); err != nil {
		return err
	}

	if id, ok := t.page.QueryParam(paramCustomerID); ok && id != "" {
		if err := t.Customer(ctx, &models.CustomerData{ID: id}); err != nil {
			t.ReportError(ctx, "customer", err)
		}
	}
	return nil
}

// mergeHub layers opts over current, then defaults.
func mergeHub(current *models.HubCookie, opts models.ConfigOptions) *models.HubCookie {
	hub := &models.HubCookie{
		Token:           opts.Token,
		WorkspaceID:     opts.WorkspaceID,
		NodeID:          opts.NodeID,
		Target:          firstTarget(opts.Target, current.Target, models.DefaultTarget),
		AggregateNodeID: firstString(opts.AggregateNodeID, current.AggregateNodeID),
		AggregateToken:  firstString(opts.AggregateToken, current.AggregateToken),
		SID:             current.SID,
		Context:         firstString(opts.Context, current.Context, models.DefaultContext),
		ContextInfo:     opts.ContextInfo,
		Debug:           current.Debug,
		CustomerID:      current.CustomerID,
		Hash:            current.Hash,
	}
	if hub.ContextInfo == nil {
		hub.ContextInfo = current.ContextInfo
	}
	if hub.ContextInfo == nil {
		hub.ContextInfo = map[string]interface{}{}
	}
	if opts.Debug != nil {
		hub.Debug = *opts.Debug
	}
	return hub
}

// captureUTM replaces the UTM cookie when the page carries utm_source.
func (t *Tracker) captureUTM() error {
	source, ok := t.page.QueryParam(paramUTMSource)
	if !ok || source == "" {
		return nil
	}
	utm := &models.UTMCookie{
		Source:   source,
		Medium:   t.queryValue(paramUTMMedium),
		Term:     t.queryValue(paramUTMTerm),
		Content:  t.queryValue(paramUTMContent),
		Campaign: t.queryValue(paramUTMCampaign),
	}
	if err := t.cookies.SetUTM(utm, nil); err != nil {
		return classify("write utm cookie", err)
	}
	return nil
}

func (t *Tracker) queryValue(name string) string {
	v, _ := t.page.QueryParam(name)
	return v
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstTarget(values ...models.Target) models.Target {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
