// Package signature verifies signed webhook deliveries from the voice-agent
// provider. The provider signs each request with a header of the form
// "t=<unix-seconds>,v0=<hex-hmac>", where the HMAC-SHA256 digest covers the
// string "<t>.<rawBody>".
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/wobblehealth/checkin-api/errors"
)

// Tolerance is how far in the past a signed timestamp may be before the
// delivery is rejected as a replay. Future-dated timestamps are not bounded.
const Tolerance = 30 * time.Minute

// Verify checks the authenticity and freshness of a webhook delivery.
// It is a pure function of (secret, body, header, now) and has no side
// effects. Comparison of digests is constant-time.
func Verify(secret string, body []byte, header string, now time.Time) error {
	if header == "" {
		return errors.ErrMissingSignature()
	}

	var timestamp, sig string
	for _, part := range strings.Split(header, ",") {
		switch {
		case strings.HasPrefix(part, "t="):
			timestamp = part[len("t="):]
		case strings.HasPrefix(part, "v0="):
			sig = part
		}
	}
	if timestamp == "" || sig == "" {
		return errors.ErrMalformedSignature()
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.ErrMalformedSignature()
	}
	tolerance := now.UnixMilli() - Tolerance.Milliseconds()
	if ts*1000 < tolerance {
		return errors.ErrSignatureExpired()
	}

	if secret == "" {
		return errors.ErrSecretNotConfigured()
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	digest := "v0=" + hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(digest), []byte(sig)) {
		return errors.ErrInvalidSignature()
	}

	return nil
}

// Sign computes the signature header value for a body at the given time.
// Used by tests and outbound tooling.
func Sign(secret string, body []byte, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	return "t=" + ts + ",v0=" + hex.EncodeToString(mac.Sum(nil))
}
