// Package uri implements the transport encoding of media references passed as query parameters.
//
// References are encoded with the URL-safe base64 alphabet ('-' and '_' in place of '+' and '/')
// and keep their padding. Decoding accepts both padded and unpadded input.
package uri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrDecode is returned when a reference cannot be decoded.
var ErrDecode = errors.New("undecodable uri")

// Encode returns the URL-safe base64 form of s.
func Encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

// Decode reverses Encode. Input without padding is accepted.
func Decode(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return "", fmt.Errorf("%w: empty", ErrDecode)
	}

	enc := base64.URLEncoding
	if !strings.HasSuffix(encoded, "=") && len(encoded)%4 != 0 {
		enc = base64.RawURLEncoding
	}

	raw, err := enc.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDecode, err)
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not valid utf-8", ErrDecode)
	}

	return string(raw), nil
}

// IsRemote reports whether s looks like a remote stream the player can open directly.
func IsRemote(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "http")
}
