// Copyright (c) 2026 Pofol. All rights reserved.

/*
Package sec provides cryptographic primitives for the Folio API.

It isolates security-sensitive code (password hashing, token signing) from the
domain logic. The [Codec] is the only component in the system that touches
cryptographic signing; everything above it deals in [AuthClaims] values.

# Architecture

  - Codec: stateless HMAC-SHA256 signer/verifier, built once at startup from
    the configured secret. There is no ambient or global secret lookup.
  - AuthClaims: the claim set embedded in every credential before signing.
  - Hashing: bcrypt helpers for password storage.
*/
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Claim Set

// AuthClaims is the payload embedded inside a signed credential.
//
// Access credentials carry the full set (the role allows authorization checks
// without a database hit); refresh credentials carry only UserID and Email —
// just enough to re-identify the account.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Nickname string `json:"nickname,omitempty"`
	Role     string `json:"role,omitempty"`
}

// # Failure Taxonomy

// Decode failures are distinct so tests can assert the cause; callers in the
// request path only care about valid-vs-not and treat all three the same.
var (
	// ErrTokenMalformed indicates the token structure could not be parsed.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenExpired indicates a structurally valid token whose expiry has elapsed.
	ErrTokenExpired = errors.New("sec: token has expired")

	// ErrTokenSignature indicates the signature does not verify against our secret.
	ErrTokenSignature = errors.New("sec: token signature is invalid")
)

// # Codec

// Codec encodes and decodes signed, time-bounded claim sets.
//
// It is a pure function over its inputs: no storage access, no side effects.
// A single instance is constructed in main from configuration and shared by
// every component that issues or verifies credentials.
type Codec struct {
	secret []byte
}

// NewCodec constructs a [Codec] from the configured symmetric secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode signs the claim set with HMAC-SHA256 and stamps issued-at/expiry.
//
// # Parameters
//   - claims: The claim set to embed. IssuedAt/ExpiresAt are overwritten.
//   - timeToLive: The duration before the credential expires.
//
// # Returns
//   - The compact signed token string, or an error if signing fails.
func (codec *Codec) Encode(claims *AuthClaims, timeToLive time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(timeToLive))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Decode verifies the signature and validity window of a token string.
//
// # Returns
//   - *AuthClaims: The embedded claim set when the token is valid.
//   - error: [ErrTokenExpired], [ErrTokenSignature], or [ErrTokenMalformed].
func (codec *Codec) Decode(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return codec.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
