// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, project token generation
// and validation, and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-history-sync/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ProjectClaimsCtxKey is the key used to store the verified token claims in
// the context. The auth middleware writes it; handlers read it back through
// GetProjectClaimsFromContext.
var ProjectClaimsCtxKey = contextKey("projectClaims")

// GetProjectClaimsFromContext retrieves the verified project claims from the context.
//
// Returns ok == false when the value is missing or has an unexpected type.
func GetProjectClaimsFromContext(ctx context.Context) (*models.ProjectClaims, bool) {
	claims, ok := ctx.Value(ProjectClaimsCtxKey).(*models.ProjectClaims)
	return claims, ok && claims != nil
}
