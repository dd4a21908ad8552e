// Package identity converts user ids to and from the opaque form carried in reset links.
//
// The encoding is base64url without padding over the decimal text of the id. It hides nothing:
// anyone can decode it, so it must never be treated as proof of anything.
package identity

import (
	"encoding/base64"
	"errors"
	"strconv"
)

// ErrMalformedUID is returned when a string was not produced by Encode.
var ErrMalformedUID = errors.New("malformed encoded user id")

var encoding = base64.RawURLEncoding.Strict()

// Encode returns the URL-safe form of id.
func Encode(id int64) string {
	return encoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// Decode reverses Encode. Input with padding, characters outside the URL-safe alphabet,
// a non-numeric payload, or a numeric payload that Encode would have written differently
// (leading zeros, a sign, a non-positive id) is rejected.
func Decode(s string) (int64, error) {
	if s == "" {
		return 0, ErrMalformedUID
	}

	raw, err := encoding.DecodeString(s)
	if err != nil {
		return 0, ErrMalformedUID
	}

	text := string(raw)
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 || strconv.FormatInt(id, 10) != text {
		return 0, ErrMalformedUID
	}

	return id, nil
}
