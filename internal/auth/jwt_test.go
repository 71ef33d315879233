package auth

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey: "test-secret-key",
		TokenTTL:  time.Hour,
		Issuer:    "test-issuer",
	})

	token, err := manager.Generate("user-123", "test@example.com", false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Error("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, "user-123")
	}
	if claims.Email != "test@example.com" {
		t.Errorf("claims.Email = %v, want %v", claims.Email, "test@example.com")
	}
	if claims.IsAdmin {
		t.Error("claims.IsAdmin = true, want false")
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, "test-issuer")
	}
}

func TestJWTManager_AdminFlag(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey: "test-secret-key",
		TokenTTL:  time.Hour,
		Issuer:    "test-issuer",
	})

	token, err := manager.Generate("admin-1", "admin@example.com", true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !claims.IsAdmin {
		t.Error("claims.IsAdmin = false, want true")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey: "test-secret-key",
		TokenTTL:  -time.Minute,
		Issuer:    "test-issuer",
	})

	token, err := manager.Generate("user-123", "test@example.com", false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := manager.Validate(token); err != ErrExpiredToken {
		t.Errorf("Validate() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey: "secret-a",
		TokenTTL:  time.Hour,
		Issuer:    "test-issuer",
	})
	other := NewJWTManager(JWTConfig{
		SecretKey: "secret-b",
		TokenTTL:  time.Hour,
		Issuer:    "test-issuer",
	})

	token, err := manager.Generate("user-123", "test@example.com", false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := other.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidToken)
	}
}
