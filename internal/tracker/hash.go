// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/models"
)

// hashCustomer fingerprints the updatable fields of data. Map keys are
// encoded in sorted order, so equal payloads hash equally regardless of
// construction order.
func hashCustomer(data *models.CustomerData) (string, error) {
	b, err := json.Marshal(data.Fingerprint())
	if err != nil {
		return "", fmt.Errorf("hash customer data: %w: %w", ErrSerialization, err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
