package binance_auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Signer implements Binance API request signing: HMAC-SHA256 over the
// canonical query string, hex-encoded, carried in the "signature" parameter.
// The API key travels in the X-MBX-APIKEY header.
type Signer struct {
	apiKey     string
	secret     []byte
	recvWindow int
	now        func() time.Time
}

// New returns a Signer. Returns nil when apiKey or secret is empty, allowing
// callers to make unsigned market-data calls without credentials.
func New(apiKey, secret string, recvWindowMS int) *Signer {
	if apiKey == "" || secret == "" {
		return nil
	}
	return &Signer{
		apiKey:     apiKey,
		secret:     []byte(secret),
		recvWindow: recvWindowMS,
		now:        time.Now,
	}
}

// Enabled reports whether this signer has credentials loaded.
func (s *Signer) Enabled() bool {
	return s != nil && s.apiKey != ""
}

// SignedQuery stamps timestamp and recvWindow onto params, encodes them, and
// appends the signature last so the signed payload is byte-identical to what
// goes on the wire. Returns params.Encode() unchanged when s is nil.
func (s *Signer) SignedQuery(params url.Values) string {
	if s == nil {
		return params.Encode()
	}

	params.Set("timestamp", strconv.FormatInt(s.now().UnixMilli(), 10))
	if s.recvWindow > 0 {
		params.Set("recvWindow", strconv.Itoa(s.recvWindow))
	}
	qs := params.Encode()
	return qs + "&signature=" + s.Signature(qs)
}

// Signature computes the hex HMAC-SHA256 of payload under the API secret.
func (s *Signer) Signature(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Apply sets the API-key header on req. No-op when s is nil.
func (s *Signer) Apply(req *http.Request) {
	if s == nil {
		return
	}
	req.Header.Set("X-MBX-APIKEY", s.apiKey)
}
