package qrtoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// TTL is the fixed lifetime of a redemption token from issuance.
const TTL = 120 * time.Second

const defaultByteLength = 32

// Generate produces a cryptographically strong opaque token encoded with the
// URL-safe base64 alphabet, padding stripped. The raw value is handed to the
// caller exactly once; only its digest is ever stored.
func Generate(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = defaultByteLength
	}
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Digest is the one-way hash used for storage and comparison.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// QrToken is one issued redemption token. The clear value never appears here.
type QrToken struct {
	ID         uuid.UUID
	WalletID   uuid.UUID
	CouponID   uuid.UUID
	TokenHash  string
	ExpiresAt  time.Time
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

// IsLive reports whether the token is neither expired nor redeemed.
func (t QrToken) IsLive(now time.Time) bool {
	return t.RedeemedAt == nil && t.ExpiresAt.After(now)
}
