package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
)

// ReplayWindow is the maximum accepted age of a signed payload. Events whose
// timestamp deviates from the verifier's clock by more than this are
// rejected even with a valid signature.
const ReplayWindow = 5 * time.Minute

// Signature is a parsed signature header of the form
// "t=<unix-ts>,h=<space-separated header names>,v1=<hex hmac>".
// The scheme key may be v1 or v0.
type Signature struct {
	Timestamp   int64
	HeaderNames []string
	MAC         string
}

// ParseSignatureHeader parses the signature header value
func ParseSignatureHeader(header string) (*Signature, error) {
	sig := &Signature{}
	seenMAC := false

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return nil, fmt.Errorf("%w: %q", domain.ErrMalformedSignature, part)
		}

		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid timestamp %q", domain.ErrMalformedSignature, value)
			}
			sig.Timestamp = ts
		case "h":
			if value != "" {
				sig.HeaderNames = strings.Split(value, " ")
			}
		case "v1", "v0":
			sig.MAC = value
			seenMAC = true
		}
	}

	if sig.Timestamp == 0 || !seenMAC {
		return nil, fmt.Errorf("%w: missing timestamp or signature", domain.ErrMalformedSignature)
	}

	return sig, nil
}

// Verify validates a signed webhook payload against a set of configured
// secrets, accepting the payload if any one of them produces a matching
// HMAC. The signed material is
// "{timestamp}.{headerNames}.{headerValues}.{rawBody}" where header names
// and the corresponding request header values are space-joined in the order
// listed in the h= field.
func Verify(sigHeader string, headers http.Header, body []byte, secrets []string, now time.Time) error {
	sig, err := ParseSignatureHeader(sigHeader)
	if err != nil {
		return err
	}

	age := now.Unix() - sig.Timestamp
	if age > int64(ReplayWindow.Seconds()) || age < -int64(ReplayWindow.Seconds()) {
		return domain.ErrSignatureExpired
	}

	headerValues := make([]string, 0, len(sig.HeaderNames))
	for _, name := range sig.HeaderNames {
		headerValues = append(headerValues, headers.Get(name))
	}

	signed := fmt.Sprintf("%d.%s.%s.%s",
		sig.Timestamp,
		strings.Join(sig.HeaderNames, " "),
		strings.Join(headerValues, " "),
		string(body))

	expected, err := hex.DecodeString(sig.MAC)
	if err != nil {
		return fmt.Errorf("%w: signature is not hex", domain.ErrMalformedSignature)
	}

	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		h := hmac.New(sha256.New, []byte(secret))
		h.Write([]byte(signed))
		if hmac.Equal(h.Sum(nil), expected) {
			return nil
		}
	}

	return domain.ErrSignatureMismatch
}

// Sign produces a signature header value for a payload. It exists for tests
// and for local tooling that replays events against a dev server.
func Sign(secret string, headerNames []string, headers http.Header, body []byte, at time.Time) string {
	headerValues := make([]string, 0, len(headerNames))
	for _, name := range headerNames {
		headerValues = append(headerValues, headers.Get(name))
	}

	signed := fmt.Sprintf("%d.%s.%s.%s",
		at.Unix(),
		strings.Join(headerNames, " "),
		strings.Join(headerValues, " "),
		string(body))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signed))

	return fmt.Sprintf("t=%d,h=%s,v1=%s", at.Unix(), strings.Join(headerNames, " "), hex.EncodeToString(h.Sum(nil)))
}
