package auth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewService("test-secret")
	svc.RegisterAPICredentials("key-1", "secret-1")

	token, err := svc.GenerateToken(Credentials{APIKey: "key-1", APISecret: "secret-1"})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token.Token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := svc.ValidateToken(token.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.ClientID != "key-1" {
		t.Errorf("ClientID = %q, want %q", claims.ClientID, "key-1")
	}
}

func TestGenerateTokenInvalidCredentials(t *testing.T) {
	svc := NewService("test-secret")
	svc.RegisterAPICredentials("key-1", "secret-1")

	_, err := svc.GenerateToken(Credentials{APIKey: "key-1", APISecret: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("GenerateToken() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewService("test-secret")
	svc.RegisterAPICredentials("key-1", "secret-1")

	token, err := svc.GenerateToken(Credentials{APIKey: "key-1", APISecret: "secret-1"})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other := NewService("different-secret")
	if _, err := other.ValidateToken(token.Token); err == nil {
		t.Fatal("ValidateToken() accepted a token signed with another secret")
	}
}

func TestGetClientID(t *testing.T) {
	tests := []struct {
		name   string
		claims interface{}
		want   string
	}{
		{"present", jwt.MapClaims{"client_id": "key-1"}, "key-1"},
		{"missing", jwt.MapClaims{"exp": 1234}, ""},
		{"wrong type", jwt.MapClaims{"client_id": 42}, ""},
		{"not map claims", "garbage", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetClientID(tt.claims); got != tt.want {
				t.Errorf("GetClientID() = %q, want %q", got, tt.want)
			}
		})
	}
}
