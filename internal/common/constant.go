package common

import (
	"crypto/rand"
	"encoding/hex"
)

// Header names shared by the REST client and server.
const (
	APIKeyHeaderName        = "apikey"
	AuthorizationHeaderName = "Authorization"
	PreferHeaderName        = "Prefer"
	ReturnRepresentation    = "return=representation"
)

// DateLayout is the wire format of date-only fields (due dates).
const DateLayout = "2006-01-02"

// MakeRandHexString returns size random bytes encoded as hex.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
