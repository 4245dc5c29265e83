package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs time-limited tokens carrying a user id as subject. The
// signing secret comes in at construction, never from ambient state.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed HS256 token whose subject is the user id,
// valid for the issuer's TTL.
func (i *Issuer) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token, checks the HS256 signature and expiry, and
// returns the subject user id.
func (i *Issuer) Verify(tokenString string) (uint, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to verify token: %w", err)
	}
	return subjectID(claims)
}

// Subject extracts the user id from a compact token without verifying
// the signature or expiry. Callers that use it treat possession of a
// well-formed token as sufficient.
func Subject(tokenString string) (uint, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return 0, fmt.Errorf("failed to decode token: %w", err)
	}
	return subjectID(claims)
}

func subjectID(claims jwt.RegisteredClaims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return uint(id), nil
}
