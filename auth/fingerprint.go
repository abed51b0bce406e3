package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

// ClientInfo is the set of connection-level signals a fingerprint is
// derived from.
type ClientInfo struct {
	IP        string
	UserAgent string
	Language  string
}

// ReadClientInfo extracts the client signals from request headers. The IP
// is the first X-Forwarded-For entry, then X-Real-IP, else empty.
func ReadClientInfo(h http.Header) ClientInfo {
	var ip string
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		for _, part := range strings.Split(fwd, ",") {
			if p := strings.TrimSpace(part); p != "" {
				ip = p
				break
			}
		}
	}
	if ip == "" {
		ip = strings.TrimSpace(h.Get("X-Real-Ip"))
	}
	return ClientInfo{
		IP:        ip,
		UserAgent: h.Get("User-Agent"),
		Language:  h.Get("Accept-Language"),
	}
}

// ClientIP returns the rate-limit key for a request: the extracted client
// IP, or "unknown" when none of the headers carry one.
func ClientIP(h http.Header) string {
	if ip := ReadClientInfo(h).IP; ip != "" {
		return ip
	}
	return "unknown"
}

// Fingerprint derives the opaque client-context identifier: a SHA-256
// digest over "{salt}|{ip}|{userAgent}|{language}", base64url without
// padding. Pure function of its inputs; the session manager and the
// request gate both call this and must agree bit-for-bit.
func Fingerprint(salt string, info ClientInfo) string {
	raw := salt + "|" + info.IP + "|" + info.UserAgent + "|" + info.Language
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// FingerprintFromHeaders computes the fingerprint for a request using the
// configured salt.
func (p Params) FingerprintFromHeaders(h http.Header) string {
	return Fingerprint(p.FingerprintSalt, ReadClientInfo(h))
}
