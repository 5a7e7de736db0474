package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret = "test-secret-for-sessions"
	testID     = "507f1f77bcf86cd799439011"
)

func TestIssueAndParse(t *testing.T) {
	token, expiresAt, err := Issue(testID, "dana@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if expiresAt.Before(time.Now()) {
		t.Error("token must expire in the future")
	}

	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != testID {
		t.Errorf("subject = %q, want %q", claims.Subject, testID)
	}
	if claims.Email != "dana@example.com" {
		t.Errorf("email = %q, want dana@example.com", claims.Email)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := Issue(testID, "dana@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := Parse(token, "a-different-secret"); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestParse_Expired(t *testing.T) {
	token, _, err := Issue(testID, "dana@example.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := Parse(token, testSecret); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse("not.a.token", testSecret); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}

func TestIssue_EmptySecret(t *testing.T) {
	if _, _, err := Issue(testID, "dana@example.com", "", time.Hour); err == nil {
		t.Fatal("issuing without a secret must fail")
	}
}

// A deployment that never set its secret must fail closed: a token signed
// with the empty key would otherwise verify against it.
func TestParse_EmptySecret(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "attacker-chosen-intern-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := forged.SignedString([]byte(""))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if claims, err := Parse(token, ""); err == nil {
		t.Fatalf("token accepted with empty secret, subject %q", claims.Subject)
	}
}
