package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-history-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateProjectToken_Success(t *testing.T) {
	issuer := "test-issuer"
	subject := "ci-runner"
	projects := []string{"remote-a", "remote-b"}
	key := "secret-key"

	token, err := GenerateProjectToken(issuer, subject, projects, time.Hour, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}

	claims, ok := token.Token.Claims.(*models.ProjectClaims)
	if !ok {
		t.Fatal("could not cast claims to ProjectClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != subject {
		t.Errorf("expected subject %s, got %s", subject, claims.Subject)
	}
	if !token.Claims.Allows("remote-b") {
		t.Error("expected token to allow remote-b")
	}
}

func TestGenerateProjectToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		projects []string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "sub", []string{"p"}, time.Hour, "key"},
		{"empty subject", "iss", "", []string{"p"}, time.Hour, "key"},
		{"no projects", "iss", "sub", nil, time.Hour, "key"},
		{"zero duration", "iss", "sub", []string{"p"}, 0, "key"},
		{"negative duration", "iss", "sub", []string{"p"}, -time.Second, "key"},
		{"empty key", "iss", "sub", []string{"p"}, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateProjectToken(tt.issuer, tt.subject, tt.projects, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseProjectToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	genToken, err := GenerateProjectToken(issuer, "alice", []string{"remote-a"}, 5*time.Minute, key)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseProjectToken(genToken.SignedString, key, issuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsed.Claims.Subject != "alice" {
		t.Errorf("expected subject alice, got %s", parsed.Claims.Subject)
	}
	if !parsed.Claims.Allows("remote-a") {
		t.Error("expected parsed claims to allow remote-a")
	}
	if parsed.Claims.Allows("remote-b") {
		t.Error("expected parsed claims to reject remote-b")
	}
}

func TestValidateAndParseProjectToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateProjectToken("test-issuer", "alice", []string{"p"}, time.Hour, "correct-key")

	_, err := ValidateAndParseProjectToken(genToken.SignedString, "wrong-key", "test-issuer")
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseProjectToken_Expired(t *testing.T) {
	key := "key"
	past := time.Now().Add(-time.Hour)
	claims := &models.ProjectClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
		Projects: []string{"p"},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ValidateAndParseProjectToken(signed, key, "iss")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseProjectToken_WrongIssuer(t *testing.T) {
	key := "key"
	genToken, _ := GenerateProjectToken("real-issuer", "alice", []string{"p"}, time.Hour, key)

	_, err := ValidateAndParseProjectToken(genToken.SignedString, key, "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseProjectToken_EmptySubject(t *testing.T) {
	key := "key"
	claims := &models.ProjectClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Projects: []string{"p"},
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))

	_, err := ValidateAndParseProjectToken(signed, key, "iss")
	if err == nil {
		t.Error("expected error for empty subject, got nil")
	}
}

func TestValidateAndParseProjectToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseProjectToken("not.a.token", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer tok", "tok", false},
		{"surrounding spaces", "  Bearer tok  ", "tok", false},
		{"missing token", "Bearer", "", true},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", true},
		{"empty", "", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
