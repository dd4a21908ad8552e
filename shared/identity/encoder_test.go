package identity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, id := range []int64{1, 7, 42, 1000, 123456789, math.MaxInt64} {
		encoded := Encode(id)
		assert.NotContains(t, encoded, "=")

		got, err := Decode(encoded)
		require.NoError(t, err, "id %d", id)
		assert.Equal(t, id, got)
	}
}

func TestEncode_KnownValue(t *testing.T) {
	// base64url("1") without padding
	assert.Equal(t, "MQ", Encode(1))
	assert.Equal(t, "NDI", Encode(42))
}

func TestDecode_RejectsForeignInput(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"padding":          "MQ==",
		"std alphabet":     "+/8",
		"not base64":       "!!!",
		"non numeric":      encodeRaw("abc"),
		"leading zero":     encodeRaw("01"),
		"negative":         encodeRaw("-5"),
		"zero":             encodeRaw("0"),
		"plus sign":        encodeRaw("+5"),
		"overflow":         encodeRaw("99999999999999999999"),
		"embedded space":   encodeRaw("1 2"),
		"truncated symbol": "M",
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(in)
			assert.ErrorIs(t, err, ErrMalformedUID)
		})
	}
}

// encodeRaw encodes an arbitrary payload with the same alphabet as Encode.
func encodeRaw(payload string) string {
	return encoding.EncodeToString([]byte(payload))
}
