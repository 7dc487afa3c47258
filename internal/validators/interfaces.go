// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks change records before they enter a history.
//
// A record is the JSON payload of one revision. Validation rejects unknown
// actions and records that lack the fields their action needs, so that a
// malformed edit is refused at commit time instead of breaking a later
// merge on another machine.
package validators

import "context"

// Validator checks a value. Accepted value types are up to the
// implementation; fields optionally narrows the check to named fields.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
