package codec

import "github.com/Vistara-Labs/terminator-dancer/types"

// DecodeCompactU16 decodes a compact-u16 value starting at data[0]. It
// returns the value and the number of bytes consumed (1 or 2).
//
// Encoding: a first byte with its high bit clear encodes a 7-bit value
// directly. A first byte with its high bit set combines with the next byte
// as (first&0x7F)|(second<<7), giving up to 14 bits.
func DecodeCompactU16(data []byte) (value int, consumed int, err error) {
	if len(data) < 1 {
		return 0, 0, &types.TruncatedInput{Reason: "expected compact-u16 first byte"}
	}
	first := data[0]
	if first&0x80 == 0 {
		return int(first), 1, nil
	}
	if len(data) < 2 {
		return 0, 0, &types.TruncatedInput{Reason: "expected compact-u16 second byte"}
	}
	second := data[1]
	value = int(first&0x7F) | (int(second) << 7)
	return value, 2, nil
}

// EncodeCompactU16 encodes value as a compact-u16, the inverse of
// DecodeCompactU16. value must fit in 14 bits.
func EncodeCompactU16(value int) []byte {
	if value < 0x80 {
		return []byte{byte(value)}
	}
	return []byte{byte(value&0x7F) | 0x80, byte(value >> 7)}
}

func (c *cursor) readCompactU16(field string) (int, error) {
	v, n, err := DecodeCompactU16(c.data[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}
