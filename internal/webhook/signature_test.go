package webhook_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/webhook"
)

func signedRequest(secret string, body []byte, at time.Time) (string, http.Header) {
	headers := http.Header{}
	headers.Set("X-Event-Id", "evt_123")
	headers.Set("Content-Type", "application/json")

	sig := webhook.Sign(secret, []string{"X-Event-Id", "Content-Type"}, headers, body, at)
	return sig, headers
}

func TestVerify(t *testing.T) {
	body := []byte(`{"type":"unlock","lockup_id":42}`)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("accepts payload signed with a configured secret", func(t *testing.T) {
		sig, headers := signedRequest("secret-a", body, now)

		err := webhook.Verify(sig, headers, body, []string{"secret-a"}, now)
		assert.NoError(t, err)
	})

	t.Run("accepts payload signed with any one of several secrets", func(t *testing.T) {
		sig, headers := signedRequest("secret-b", body, now)

		err := webhook.Verify(sig, headers, body, []string{"secret-a", "secret-b", "secret-c"}, now)
		assert.NoError(t, err)
	})

	t.Run("rejects payload signed with an unconfigured secret", func(t *testing.T) {
		sig, headers := signedRequest("rogue", body, now)

		err := webhook.Verify(sig, headers, body, []string{"secret-a", "secret-b"}, now)
		assert.ErrorIs(t, err, domain.ErrSignatureMismatch)
	})

	t.Run("rejects timestamp older than the replay window", func(t *testing.T) {
		signedAt := now.Add(-6 * time.Minute)
		sig, headers := signedRequest("secret-a", body, signedAt)

		err := webhook.Verify(sig, headers, body, []string{"secret-a"}, now)
		assert.ErrorIs(t, err, domain.ErrSignatureExpired)
	})

	t.Run("rejects timestamp too far in the future", func(t *testing.T) {
		signedAt := now.Add(6 * time.Minute)
		sig, headers := signedRequest("secret-a", body, signedAt)

		err := webhook.Verify(sig, headers, body, []string{"secret-a"}, now)
		assert.ErrorIs(t, err, domain.ErrSignatureExpired)
	})

	t.Run("accepts timestamp just inside the replay window", func(t *testing.T) {
		signedAt := now.Add(-4 * time.Minute)
		sig, headers := signedRequest("secret-a", body, signedAt)

		err := webhook.Verify(sig, headers, body, []string{"secret-a"}, now)
		assert.NoError(t, err)
	})

	t.Run("rejects tampered body", func(t *testing.T) {
		sig, headers := signedRequest("secret-a", body, now)

		err := webhook.Verify(sig, headers, []byte(`{"type":"unlock","lockup_id":43}`), []string{"secret-a"}, now)
		assert.ErrorIs(t, err, domain.ErrSignatureMismatch)
	})

	t.Run("rejects tampered signed header value", func(t *testing.T) {
		sig, headers := signedRequest("secret-a", body, now)
		headers.Set("X-Event-Id", "evt_999")

		err := webhook.Verify(sig, headers, body, []string{"secret-a"}, now)
		assert.ErrorIs(t, err, domain.ErrSignatureMismatch)
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		err := webhook.Verify("not a signature", http.Header{}, body, []string{"secret-a"}, now)
		assert.ErrorIs(t, err, domain.ErrMalformedSignature)
	})

	t.Run("rejects when no secret matches and none configured", func(t *testing.T) {
		sig, headers := signedRequest("secret-a", body, now)

		err := webhook.Verify(sig, headers, body, nil, now)
		assert.ErrorIs(t, err, domain.ErrSignatureMismatch)
	})
}

func TestParseSignatureHeader(t *testing.T) {
	t.Run("parses v1 header", func(t *testing.T) {
		sig, err := webhook.ParseSignatureHeader("t=1748779200,h=X-Event-Id Content-Type,v1=deadbeef")
		require.NoError(t, err)
		assert.Equal(t, int64(1748779200), sig.Timestamp)
		assert.Equal(t, []string{"X-Event-Id", "Content-Type"}, sig.HeaderNames)
		assert.Equal(t, "deadbeef", sig.MAC)
	})

	t.Run("parses v0 header", func(t *testing.T) {
		sig, err := webhook.ParseSignatureHeader("t=1748779200,h=,v0=deadbeef")
		require.NoError(t, err)
		assert.Empty(t, sig.HeaderNames)
		assert.Equal(t, "deadbeef", sig.MAC)
	})

	t.Run("missing signature field", func(t *testing.T) {
		_, err := webhook.ParseSignatureHeader("t=1748779200,h=X-Event-Id")
		assert.ErrorIs(t, err, domain.ErrMalformedSignature)
	})

	t.Run("invalid timestamp", func(t *testing.T) {
		_, err := webhook.ParseSignatureHeader("t=abc,v1=deadbeef")
		assert.ErrorIs(t, err, domain.ErrMalformedSignature)
	})
}
