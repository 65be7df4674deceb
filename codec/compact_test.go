package codec

import (
	"bytes"
	"testing"
)

func TestCompactU16BoundaryValues(t *testing.T) {
	cases := []struct {
		value     int
		wantBytes int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
	}

	for _, c := range cases {
		encoded := EncodeCompactU16(c.value)
		if len(encoded) != c.wantBytes {
			t.Fatalf("EncodeCompactU16(%d): got %d bytes, want %d", c.value, len(encoded), c.wantBytes)
		}
		decoded, consumed, err := DecodeCompactU16(encoded)
		if err != nil {
			t.Fatalf("DecodeCompactU16(%d): unexpected error: %v", c.value, err)
		}
		if consumed != c.wantBytes {
			t.Fatalf("DecodeCompactU16(%d): consumed %d bytes, want %d", c.value, consumed, c.wantBytes)
		}
		if decoded != c.value {
			t.Fatalf("round trip mismatch: got %d, want %d", decoded, c.value)
		}
	}
}

func TestCompactU16TruncatedSecondByte(t *testing.T) {
	_, _, err := DecodeCompactU16([]byte{0x80})
	if err == nil {
		t.Fatalf("expected TruncatedInput error for a lone continuation byte")
	}
}

func TestCompactU16EncodeDecodeAgree(t *testing.T) {
	for _, v := range []int{1, 64, 126, 129, 200, 8192, 16382} {
		encoded := EncodeCompactU16(v)
		decoded, consumed, err := DecodeCompactU16(encoded)
		if err != nil {
			t.Fatalf("value %d: %v", v, err)
		}
		if consumed != len(encoded) {
			t.Fatalf("value %d: consumed %d, encoded length %d", v, consumed, len(encoded))
		}
		if decoded != v {
			t.Fatalf("value %d: decoded %d", v, decoded)
		}
		if !bytes.Equal(encoded, EncodeCompactU16(decoded)) {
			t.Fatalf("value %d: re-encoding mismatch", v)
		}
	}
}
