package token

import (
	"errors"
	"testing"
	"time"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
)

func testUser() *domain.User {
	clientID := int64(7)
	return &domain.User{
		ID:       42,
		Username: "alice",
		Role:     domain.RoleCliente,
		ClientID: &clientID,
	}
}

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != domain.RoleCliente {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.ClientID == nil || *claims.ClientID != 7 {
		t.Fatalf("unexpected client id: %v", claims.ClientID)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
	if claims.ExpiresAt.IsZero() {
		t.Fatalf("expected expiry to be set")
	}
}

func TestCodec_Issue_UnlinkedOmitsClientID(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	user := testUser()
	user.ClientID = nil

	signed, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ClientID != nil {
		t.Fatalf("expected nil client id, got %d", *claims.ClientID)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Advance the clock past the token lifetime.
	codec.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := codec.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	signed, err := NewCodec("secret-a", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewCodec("secret-b", time.Hour).Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := codec.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestCodec_Subject(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := codec.Subject(signed)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("unexpected subject: %s", subject)
	}

	if _, err := codec.Subject("garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
