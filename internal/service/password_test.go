package service

import (
	"errors"
	"testing"
)

func TestPlainVerifier(t *testing.T) {
	v, err := NewPasswordVerifier("plain", 0)
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}

	stored, err := v.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if stored != "secret123" {
		t.Fatalf("plain scheme must store the password unmodified, got %q", stored)
	}

	if err := v.Verify(stored, "secret123"); err != nil {
		t.Fatalf("Verify match: %v", err)
	}
	if err := v.Verify(stored, "secret124"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on mismatch, got %v", err)
	}
	if err := v.Verify(stored, "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on length mismatch, got %v", err)
	}
}

func TestBcryptVerifier(t *testing.T) {
	v, err := NewPasswordVerifier("bcrypt", 4)
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}

	stored, err := v.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if stored == "secret123" {
		t.Fatal("bcrypt scheme must not store the password as-is")
	}

	if err := v.Verify(stored, "secret123"); err != nil {
		t.Fatalf("Verify match: %v", err)
	}
	if err := v.Verify(stored, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on mismatch, got %v", err)
	}
}

func TestUnknownPasswordScheme(t *testing.T) {
	if _, err := NewPasswordVerifier("md5", 0); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}
