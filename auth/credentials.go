// Package auth implements the admin authentication core: password
// credential verification, client fingerprinting, the signed session token
// codec, the cookie session manager, the login rate limiter, and the
// request gate that protects the admin area.
//
// Everything here is deliberately pure over its inputs so that the request
// gate and the session manager validate tokens with the exact same code.
package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"hash"
	"strings"
	"time"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// Digest selects the PBKDF2 pseudo-random function.
type Digest string

const (
	DigestSHA512 Digest = "sha512"
	DigestSHA256 Digest = "sha256"
)

const (
	// DefaultIterations is the PBKDF2 cost factor: expensive enough to slow
	// offline guessing, not user-visibly slow on a login.
	DefaultIterations = 210_000
	// KeyLength is the derived key length in bytes.
	KeyLength = 64
	// DefaultSessionTTL is the session lifetime when none is configured.
	DefaultSessionTTL = 8 * time.Hour
)

// Params carries the configured admin identity and secrets. The credential
// reference (hash, salt, iterations, digest) is read-only configuration;
// nothing here is mutated at runtime.
type Params struct {
	AdminEmail      string
	PasswordHash    string // base64 of the 64-byte reference key
	PasswordSalt    string // used verbatim as UTF-8 salt bytes
	Iterations      int
	Digest          Digest
	SessionSecret   string
	FingerprintSalt string
	SessionTTL      time.Duration
}

// NewParams normalizes and applies defaults. The admin email is normalized
// once here with the same rules applied to submitted emails.
func NewParams(p Params) Params {
	p.AdminEmail = NormalizeEmail(p.AdminEmail)
	if p.Iterations <= 0 {
		p.Iterations = DefaultIterations
	}
	if p.Digest == "" {
		p.Digest = DigestSHA512
	}
	if p.FingerprintSalt == "" {
		p.FingerprintSalt = p.SessionSecret
	}
	if p.SessionTTL <= 0 {
		p.SessionTTL = DefaultSessionTTL
	}
	return p
}

// NormalizeEmail trims, lowercases, and NFKC-normalizes an email address.
func NormalizeEmail(s string) string {
	return norm.NFKC.String(strings.ToLower(strings.TrimSpace(s)))
}

func (d Digest) hashFunc() func() hash.Hash {
	if d == DigestSHA256 {
		return sha256.New
	}
	return sha512.New
}

// DerivePasswordKey runs the configured PBKDF2 derivation over a submitted
// password. The salt string is consumed verbatim as UTF-8 bytes, matching
// the output of the credentials provisioning command.
func DerivePasswordKey(password, salt string, iterations int, digest Digest) []byte {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return pbkdf2.Key([]byte(password), []byte(salt), iterations, KeyLength, digest.hashFunc())
}

// VerifyCredentials reports whether the submitted email and password match
// the configured admin credential reference.
//
// Both comparisons are constant-time. Unequal lengths short-circuit to
// false, which leaks length only. The result is a bare boolean: callers
// cannot distinguish an unknown email from a wrong password.
func (p Params) VerifyCredentials(email, password string) bool {
	if !constantTimeEqual([]byte(NormalizeEmail(email)), []byte(p.AdminEmail)) {
		return false
	}

	reference, err := base64.StdEncoding.DecodeString(p.PasswordHash)
	if err != nil {
		return false
	}
	derived := DerivePasswordKey(password, p.PasswordSalt, p.Iterations, p.Digest)
	return constantTimeEqual(derived, reference)
}

// constantTimeEqual compares two byte slices without content-dependent
// early exits. Length is checked first.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
