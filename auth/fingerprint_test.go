package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func headerSet(pairs ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

func TestReadClientInfo_ForwardedForWins(t *testing.T) {
	h := headerSet(
		"X-Forwarded-For", " 203.0.113.7 , 10.0.0.1",
		"X-Real-Ip", "198.51.100.2",
		"User-Agent", "ua",
		"Accept-Language", "en-US",
	)
	info := ReadClientInfo(h)
	assert.Equal(t, "203.0.113.7", info.IP, "first forwarded-for entry wins")
	assert.Equal(t, "ua", info.UserAgent)
	assert.Equal(t, "en-US", info.Language)
}

func TestReadClientInfo_RealIPFallback(t *testing.T) {
	info := ReadClientInfo(headerSet("X-Real-Ip", "198.51.100.2"))
	assert.Equal(t, "198.51.100.2", info.IP)
}

func TestReadClientInfo_EmptyHeaders(t *testing.T) {
	info := ReadClientInfo(http.Header{})
	assert.Equal(t, ClientInfo{}, info)
}

func TestClientIP_UnknownFallback(t *testing.T) {
	assert.Equal(t, "unknown", ClientIP(http.Header{}))
	assert.Equal(t, "203.0.113.7", ClientIP(headerSet("X-Forwarded-For", "203.0.113.7")))
}

func TestFingerprint_Deterministic(t *testing.T) {
	info := ClientInfo{IP: "203.0.113.7", UserAgent: "ua", Language: "en"}
	a := Fingerprint("salt", info)
	b := Fingerprint("salt", info)
	assert.Equal(t, a, b, "identical inputs must agree bit-for-bit across call sites")
	assert.Len(t, a, 43, "unpadded base64url of a SHA-256 digest")
}

func TestFingerprint_SensitiveToEveryInput(t *testing.T) {
	base := Fingerprint("salt", ClientInfo{IP: "ip", UserAgent: "ua", Language: "lang"})
	assert.NotEqual(t, base, Fingerprint("salt2", ClientInfo{IP: "ip", UserAgent: "ua", Language: "lang"}))
	assert.NotEqual(t, base, Fingerprint("salt", ClientInfo{IP: "ip2", UserAgent: "ua", Language: "lang"}))
	assert.NotEqual(t, base, Fingerprint("salt", ClientInfo{IP: "ip", UserAgent: "ua2", Language: "lang"}))
	assert.NotEqual(t, base, Fingerprint("salt", ClientInfo{IP: "ip", UserAgent: "ua", Language: "lang2"}))
}

func TestFingerprint_FieldBoundaries(t *testing.T) {
	// The separator prevents ambiguous concatenations from colliding.
	a := Fingerprint("s", ClientInfo{IP: "ab", UserAgent: "c"})
	b := Fingerprint("s", ClientInfo{IP: "a", UserAgent: "bc"})
	assert.NotEqual(t, a, b)
}

func TestFingerprintFromHeaders_MatchesPureFunction(t *testing.T) {
	p := NewParams(Params{AdminEmail: "a@b.c", SessionSecret: "sec", FingerprintSalt: "fps"})
	h := headerSet("X-Forwarded-For", "203.0.113.7", "User-Agent", "ua", "Accept-Language", "en")
	assert.Equal(t, Fingerprint("fps", ReadClientInfo(h)), p.FingerprintFromHeaders(h))
}

func TestNewParams_FingerprintSaltDefaultsToSecret(t *testing.T) {
	p := NewParams(Params{AdminEmail: "a@b.c", SessionSecret: "sec"})
	assert.Equal(t, "sec", p.FingerprintSalt)
}
