package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Error("CheckPasswordHash rejected the correct password")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("CheckPasswordHash accepted a wrong password")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-1", "dana@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "dana@example.com" {
		t.Errorf("claims = %+v, want user-1/dana@example.com", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).GenerateToken("user-1", "dana@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := NewJWTManager("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted a token signed with a different secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	token, err := NewJWTManager("secret", -time.Minute).GenerateToken("user-1", "dana@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := NewJWTManager("secret", -time.Minute).ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted an expired token")
	}
}
