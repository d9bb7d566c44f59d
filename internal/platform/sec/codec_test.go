// Copyright (c) 2026 Pofol. All rights reserved.

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_EncodeDecode_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret-key")

	original := &AuthClaims{
		UserID:   7,
		Email:    "a@b.com",
		Nickname: "tester",
		Role:     string(RoleUser),
	}

	tokenString, err := codec.Encode(original, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	decoded, err := codec.Decode(tokenString)
	require.NoError(t, err)

	assert.Equal(t, int64(7), decoded.UserID)
	assert.Equal(t, "a@b.com", decoded.Email)
	assert.Equal(t, "tester", decoded.Nickname)
	assert.Equal(t, string(RoleUser), decoded.Role)
	assert.NotNil(t, decoded.IssuedAt)
	assert.NotNil(t, decoded.ExpiresAt)
}

func TestCodec_Decode_Expired(t *testing.T) {
	codec := NewCodec("test-secret-key")

	tokenString, err := codec.Encode(&AuthClaims{UserID: 7, Email: "a@b.com"}, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Decode(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	signer := NewCodec("secret-one")
	verifier := NewCodec("secret-two")

	tokenString, err := signer.Encode(&AuthClaims{UserID: 7, Email: "a@b.com"}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Decode(tokenString)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := NewCodec("test-secret-key")

	cases := []string{
		"",
		"not-a-token",
		"a.b",
		"a.b.c.d",
	}
	for _, raw := range cases {
		_, err := codec.Decode(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input: %q", raw)
	}
}

func TestCodec_Decode_TamperedPayload(t *testing.T) {
	codec := NewCodec("test-secret-key")

	tokenString, err := codec.Encode(&AuthClaims{UserID: 7, Email: "a@b.com"}, time.Hour)
	require.NoError(t, err)

	// Flip a character inside the payload segment.
	tampered := []byte(tokenString)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	_, err = codec.Decode(string(tampered))
	assert.Error(t, err)
}
