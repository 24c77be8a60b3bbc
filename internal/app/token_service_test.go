package app

import (
	"strings"
	"testing"
	"time"
)

func TestRoomTokenRoundTrip(t *testing.T) {
	svc := NewRoomTokenService("test-secret", "flushed", time.Minute)

	token, err := svc.IssueToken("u1", "abcd")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.Room != "abcd" {
		t.Errorf("room = %q, want abcd", claims.Room)
	}
	if claims.Subject != "u1" {
		t.Errorf("subject = %q, want u1", claims.Subject)
	}
}

func TestRoomTokenWrongSecret(t *testing.T) {
	issuer := NewRoomTokenService("secret-a", "flushed", time.Minute)
	verifier := NewRoomTokenService("secret-b", "flushed", time.Minute)

	token, err := issuer.IssueToken("u1", "abcd")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatal("expected verification failure for wrong secret")
	}
}

func TestRoomTokenExpired(t *testing.T) {
	svc := NewRoomTokenService("test-secret", "flushed", time.Minute)
	// The constructor normalizes non-positive ttls, so shrink it directly.
	svc.ttl = time.Millisecond
	token, err := svc.IssueToken("u1", "abcd")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := svc.VerifyToken(token); err == nil {
		t.Fatal("expected verification failure for expired token")
	}
}

func TestRoomTokenRequiresConfig(t *testing.T) {
	svc := NewRoomTokenService("", "flushed", time.Minute)
	if _, err := svc.IssueToken("u1", "abcd"); err == nil || !strings.Contains(err.Error(), "incomplete") {
		t.Fatalf("issue error = %v, want incomplete config", err)
	}
	if _, err := svc.IssueToken("", "abcd"); err == nil {
		t.Fatal("expected error for empty config")
	}
}
