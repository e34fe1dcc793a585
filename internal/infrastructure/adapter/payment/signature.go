package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// Sign returns the hex HMAC-SHA256 of body under secret
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature against the HMAC of body in constant time.
// An empty secret means the provider is not configured.
func VerifySignature(secret string, body []byte, signature string) error {
	if secret == "" {
		return errs.ErrUnknownProvider
	}

	signature = strings.TrimSpace(signature)
	if signature == "" {
		return errs.ErrInvalidSignature
	}
	got, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(signature), "sha256="))
	if err != nil {
		return errs.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return errs.ErrInvalidSignature
	}
	return nil
}
