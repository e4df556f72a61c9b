// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package models

// CustomerData is the caller-supplied input of the customer operation.
//
// ID is a remote customer id known to the caller (for example from a
// cross-channel link). Every other field is "updatable": when at least one of
// them is present the customer record is created or patched remotely. A nil
// *CustomerData means "reset identity", not "no-op".
type CustomerData struct {
	ID         string                 `json:"id,omitempty"`
	ExternalID string                 `json:"externalId,omitempty"`
	Base       map[string]interface{} `json:"base,omitempty"`
	Extended   map[string]interface{} `json:"extended,omitempty"`
	Consents   map[string]interface{} `json:"consents,omitempty"`
	Extra      string                 `json:"extra,omitempty"`
	Tags       *CustomerTags          `json:"tags,omitempty"`
}

// CustomerTags are the automatic and manual tag lists of a customer.
type CustomerTags struct {
	Auto   []string `json:"auto,omitempty"`
	Manual []string `json:"manual,omitempty"`
}

// HasUpdatableFields reports whether any field other than ID is present.
// An id-only payload only binds identity and never triggers an update.
func (d *CustomerData) HasUpdatableFields() bool {
	if d == nil {
		return false
	}
	return d.ExternalID != "" ||
		d.Base != nil ||
		d.Extended != nil ||
		d.Consents != nil ||
		d.Extra != "" ||
		d.Tags != nil
}

// Fingerprint returns the subset of the data that participates in change
// detection (everything except ID).
func (d *CustomerData) Fingerprint() CustomerFingerprint {
	return CustomerFingerprint{
		ExternalID: d.ExternalID,
		Base:       d.Base,
		Extended:   d.Extended,
		Consents:   d.Consents,
		Extra:      d.Extra,
		Tags:       d.Tags,
	}
}

// CustomerFingerprint is the hash input of a customer payload. Maps encode
// nil as null and empty as {}, so two payloads hash equally only when
// HasUpdatableFields agrees on them.
type CustomerFingerprint struct {
	ExternalID string                 `json:"externalId,omitempty"`
	Base       map[string]interface{} `json:"base"`
	Extended   map[string]interface{} `json:"extended"`
	Consents   map[string]interface{} `json:"consents"`
	Extra      string                 `json:"extra,omitempty"`
	Tags       *CustomerTags          `json:"tags,omitempty"`
}

// CreateCustomerRequest is the body of POST /workspaces/{w}/customers:
// the caller data without its id, bound to the selected node.
type CreateCustomerRequest struct {
	NodeID     string                 `json:"nodeId"`
	ExternalID string                 `json:"externalId,omitempty"`
	Base       map[string]interface{} `json:"base,omitempty"`
	Extended   map[string]interface{} `json:"extended,omitempty"`
	Consents   map[string]interface{} `json:"consents,omitempty"`
	Extra      string                 `json:"extra,omitempty"`
	Tags       *CustomerTags          `json:"tags,omitempty"`
}

// NewCreateCustomerRequest builds the create body for data on nodeID.
func NewCreateCustomerRequest(data *CustomerData, nodeID string) CreateCustomerRequest {
	return CreateCustomerRequest{
		NodeID:     nodeID,
		ExternalID: data.ExternalID,
		Base:       data.Base,
		Extended:   data.Extended,
		Consents:   data.Consents,
		Extra:      data.Extra,
		Tags:       data.Tags,
	}
}

// SessionBinding is the body of POST /workspaces/{w}/customers/{id}/sessions.
type SessionBinding struct {
	Value string `json:"value"`
}
