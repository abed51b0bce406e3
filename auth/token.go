package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// SessionPayload is the set of claims carried inside a session token.
// Timestamps are epoch milliseconds. Payloads are created at login and
// never mutated; a new login mints a new payload.
type SessionPayload struct {
	Subject     string `json:"sub"`
	IssuedAt    int64  `json:"issuedAt"`
	ExpiresAt   int64  `json:"expiresAt"`
	Fingerprint string `json:"fingerprint"`
}

// EncodeToken serializes the payload and signs it with the server secret.
// The wire format is "base64url(JSON(payload)).base64url(HMAC-SHA256)",
// both parts unpadded. The token is tamper-evident, not encrypted.
func EncodeToken(secret string, payload SessionPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	data := base64.RawURLEncoding.EncodeToString(raw)
	return data + "." + signToken(secret, data), nil
}

// DecodeToken verifies and parses a token. It returns nil on any failure:
// malformed shape, bad signature, unparseable payload, expiry in the past,
// or a fingerprint mismatch when expectedFingerprint is non-empty.
//
// Signature verification runs before the payload is parsed, so attacker
// input never reaches the JSON decoder without a valid signature.
func DecodeToken(secret, token, expectedFingerprint string, now time.Time) *SessionPayload {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	data, signature := parts[0], parts[1]

	if !constantTimeEqual([]byte(signature), []byte(signToken(secret, data))) {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}
	var payload SessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if payload.ExpiresAt < now.UnixMilli() {
		return nil
	}
	if expectedFingerprint != "" && payload.Fingerprint != expectedFingerprint {
		return nil
	}
	return &payload
}

func signToken(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
