package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Approval tokens gate access to exactly one batch, so they must be
// unguessable: 32 random bytes gives 256 bits of entropy, encoded to a
// 43-character URL-safe string.
const tokenBytes = 32

// EncodedLength is the length of a generated approval token string.
const EncodedLength = 43

func NewApprovalToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate approval token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
