package models

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// ProjectClaims is the claim set of a bearer token accepted by the history
// server. Projects lists the remote ids the holder may push to.
type ProjectClaims struct {
	jwt.RegisteredClaims

	Projects []string `json:"projects"`
}

// Allows reports whether the token is scoped to remoteID.
func (c *ProjectClaims) Allows(remoteID string) bool {
	return slices.Contains(c.Projects, remoteID)
}

// Token wraps a signed project token.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in the Authorization header.
type Token struct {
	*jwt.Token `json:"-"`

	Claims ProjectClaims `json:"-"`

	SignedString string `json:"-"`
}

// String returns the compact signed form of the token.
func (t Token) String() string {
	return t.SignedString
}
