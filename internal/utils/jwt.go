package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-history-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateProjectToken creates a signed HMAC-SHA256 token scoped to the given
// remote project ids.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the holder (a user or a machine name)
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - projects       : remote ids the holder may push to
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	subject       - who the token is issued for
//	projects      - remote ids the token is valid for, at least one
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Example usage:
//
//	token, err := utils.GenerateProjectToken("history-server", "ci", []string{remoteID}, time.Hour, "secret")
func GenerateProjectToken(issuer, subject string, projects []string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || subject == "" || len(projects) == 0 || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating project token")
	}

	now := time.Now()
	claims := models.ProjectClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Projects: projects,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing project token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseProjectToken validates the given token string and extracts
// its project claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
func ValidateAndParseProjectToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.ProjectClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, Claims: *claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
