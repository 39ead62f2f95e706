package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WarnThreshold is how close to expiry a token gets before the
// proactive warning fires. 만료 1시간 전부터 경고를 표시한다.
const WarnThreshold = time.Hour

// Token is the decoded view of a persisted credential string.
type Token struct {
	Raw       string
	Subject   string
	ExpiresAt time.Time
}

var parser = jwt.NewParser()

// Decode reads the registered claims of raw without verifying the
// signature. The client never holds the signing secret; it only needs
// the expiry window, and the server re-verifies every request anyway.
func Decode(raw string) (Token, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Token{}, err
	}

	tok := Token{Raw: raw, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		tok.ExpiresAt = claims.ExpiresAt.Time
	}
	return tok, nil
}

// IsExpired reports whether raw carries an exp claim in the past.
// A decode failure counts as expired: fail closed.
func IsExpired(raw string) bool {
	return isExpiredAt(raw, time.Now())
}

func isExpiredAt(raw string, now time.Time) bool {
	tok, err := Decode(raw)
	if err != nil {
		return true
	}
	return !tok.ExpiresAt.After(now)
}

// TimeUntilExpiry returns the remaining validity of raw, never
// negative; zero when expired or undecodable.
func TimeUntilExpiry(raw string) time.Duration {
	return timeUntilExpiryAt(raw, time.Now())
}

func timeUntilExpiryAt(raw string, now time.Time) time.Duration {
	tok, err := Decode(raw)
	if err != nil {
		return 0
	}
	remaining := tok.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ShouldWarn is true only inside the half-open window (0, WarnThreshold]
// of remaining validity: a still-valid token that is about to expire.
func ShouldWarn(raw string) bool {
	return shouldWarnAt(raw, time.Now())
}

func shouldWarnAt(raw string, now time.Time) bool {
	remaining := timeUntilExpiryAt(raw, now)
	return remaining > 0 && remaining <= WarnThreshold
}
