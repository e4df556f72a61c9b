// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"context"
	"fmt"

	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/metrics"
	"github.com/tomtom215/hubtrack/internal/models"
	"github.com/tomtom215/hubtrack/internal/validation"
)

// eventDateLayout is RFC 3339 with millisecond precision.
const eventDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Event posts one event for the current visitor.
func (t *Tracker) Event(ctx context.Context, opts models.EventOptions) error {
	if verr := validation.ValidateStruct(&opts); verr != nil {
		return fmt.Errorf("%w: %w", ErrValidation, verr)
	}

	hub, err := t.cookies.GetHub(nil)
	if err != nil {
		return missingIdentity(err)
	}
	node, err := selectNode(hub)
	if err != nil {
		return err
	}

	payload := t.buildEvent(ctx, hub, node, opts)
	_, err = t.api.Post(ctx, eventsPath(hub.WorkspaceID), payload, node.Token)
	metrics.RecordEvent(opts.Type, err)
	if err != nil {
		return classify("send event", err)
	}

	t.trace(ctx, hub).
		Str("type", opts.Type).
		Bool("anonymous", hub.IsAnonymous()).
		Msg("Event sent")
	return nil
}

// buildEvent assembles the event body from hub, the page and the UTM cookie.
func (t *Tracker) buildEvent(ctx context.Context, hub *models.HubCookie, node nodeCredentials, opts models.EventOptions) models.EventPayload {
	contextInfo := hub.ContextInfo
	if contextInfo == nil {
		contextInfo = map[string]interface{}{}
	}

	payload := models.EventPayload{
		Type:        opts.Type,
		Context:     hub.Context,
		ContextInfo: contextInfo,
		Properties:  t.eventProperties(opts),
		CustomerID:  hub.CustomerID,
		Date:        t.now().UTC().Format(eventDateLayout),
	}
	if hub.IsAnonymous() {
		payload.BringBackProperties = &models.BringBackProperties{
			Type:   models.BringBackTypeSessionID,
			Value:  hub.SID,
			NodeID: node.NodeID,
		}
	}

	utm, err := t.cookies.GetUTM(nil)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("No usable UTM cookie, sending event without tracking")
	} else {
		payload.Tracking = models.TrackingFromUTM(utm)
	}
	return payload
}

// eventProperties returns the caller properties, layered over inferred
// page properties for viewedPage.
func (t *Tracker) eventProperties(opts models.EventOptions) map[string]interface{} {
	props := make(map[string]interface{}, len(opts.Properties)+4)
	if opts.Type == models.EventTypeViewedPage {
		props["title"] = t.page.Title()
		props["url"] = t.page.Href()
		props["path"] = t.page.Pathname()
		props["referer"] = t.page.Referrer()
	}
	for k, v := range opts.Properties {
		props[k] = v
	}
	return props
}
