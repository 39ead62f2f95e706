package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestDecodeReadsClaimsWithoutSecret(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	tok, err := Decode(signedToken(t, exp))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tok.Subject != "user-1" {
		t.Fatalf("subject = %q, want user-1", tok.Subject)
	}
	if !tok.ExpiresAt.Equal(exp) {
		t.Fatalf("exp = %v, want %v", tok.ExpiresAt, exp)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"past", signedToken(t, now.Add(-time.Minute)), true},
		{"future", signedToken(t, now.Add(time.Minute)), false},
		{"undecodable", "not-a-jwt", true},
		{"empty", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isExpiredAt(tc.raw, now); got != tc.want {
				t.Fatalf("isExpiredAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShouldWarnWindow(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name      string
		remaining time.Duration
		want      bool
	}{
		{"well before threshold", 3 * time.Hour, false},
		{"just inside threshold", WarnThreshold - time.Minute, true},
		{"exactly at threshold", WarnThreshold, true},
		{"one second left", time.Second, true},
		{"expired", -time.Minute, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := signedToken(t, now.Add(tc.remaining))
			if got := shouldWarnAt(raw, now); got != tc.want {
				t.Fatalf("shouldWarnAt(remaining=%v) = %v, want %v", tc.remaining, got, tc.want)
			}
		})
	}
}

func TestShouldWarnUndecodable(t *testing.T) {
	if shouldWarnAt("garbage", time.Now()) {
		t.Fatal("undecodable token must not warn; it is treated as expired")
	}
}

func TestTimeUntilExpiryNeverNegative(t *testing.T) {
	now := time.Now()
	if d := timeUntilExpiryAt(signedToken(t, now.Add(-time.Hour)), now); d != 0 {
		t.Fatalf("remaining = %v for expired token, want 0", d)
	}
	if d := timeUntilExpiryAt("garbage", now); d != 0 {
		t.Fatalf("remaining = %v for undecodable token, want 0", d)
	}
}
