// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

/*
Package models defines the records shared by the cookie store, the tracker
and the API client.

Cookie records:
  - HubCookie: workspace credentials, session id and the known customer
  - UTMCookie: campaign attribution copied from the page query string

Operation inputs:
  - ConfigOptions, CustomerData, EventOptions

Request bodies:
  - CreateCustomerRequest, SessionBinding, EventPayload (with Tracking and
    BringBackProperties)

Validation tags are read by internal/validation; JSON tags are the wire and
cookie format.
*/
package models
