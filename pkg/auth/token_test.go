package auth

import (
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() subject = %d, want 42", userID)
	}
}

func TestSubjectSkipsVerification(t *testing.T) {
	issuer := NewIssuer("some-other-secret", time.Hour)

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// A different issuer cannot verify the token but can still decode
	// its subject.
	stranger := NewIssuer("not-the-secret", time.Hour)
	if _, err := stranger.Verify(token); err == nil {
		t.Error("Verify() accepted a token signed with another secret")
	}

	userID, err := Subject(token)
	if err != nil {
		t.Fatalf("Subject() error = %v", err)
	}
	if userID != 7 {
		t.Errorf("Subject() = %d, want 7", userID)
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(3)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("Verify() accepted an expired token")
	}

	// Subject extraction ignores expiry.
	userID, err := Subject(token)
	if err != nil {
		t.Fatalf("Subject() error = %v", err)
	}
	if userID != 3 {
		t.Errorf("Subject() = %d, want 3", userID)
	}
}

func TestSubjectMalformed(t *testing.T) {
	if _, err := Subject("not-a-token"); err == nil {
		t.Error("Subject() accepted a malformed token")
	}
}
