package uniuri

import (
	"crypto/rand"
	"math"
)

// StdChars is the default alphabet, alphanumeric ASCII.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

const (
	// maxBufLen caps the temporary buffer for random bytes.
	maxBufLen = 2048

	// minRegenBufLen is the smallest follow-up read from crypto/rand when
	// rejection sampling left the result incomplete. Requesting fewer bytes
	// than this is not worth the call.
	minRegenBufLen = 16

	maxByteValue = 255
	byteRange    = 256
)

// NewLen returns a new random string of the provided length over StdChars.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a new random string of the provided length over the
// provided alphabet (between 2 and 256 characters).
func NewLenChars(length int, chars []byte) string {
	return string(newLenCharsBytes(length, chars))
}

// estimatedBufLen returns how many random bytes to request given that values
// above maxByte get rejected.
func estimatedBufLen(need, maxByte int) int {
	return int(math.Ceil(float64(need) * (maxByteValue / float64(maxByte))))
}

// newLenCharsBytes fills a byte slice of the given length with uniformly
// distributed characters from chars, using rejection sampling to avoid
// modulo bias.
func newLenCharsBytes(length int, chars []byte) []byte {
	if length == 0 {
		return nil
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		panic("uniuri: wrong charset length for NewLenChars")
	}

	maxRb := maxByteValue - (byteRange % clen)
	bufLen := estimatedBufLen(length, maxRb)
	if bufLen < length {
		bufLen = length
	}

	if bufLen > maxBufLen {
		bufLen = maxBufLen
	}

	buf := make([]byte, bufLen)
	out := make([]byte, length)

	var i int // index in out
	for {
		if _, err := rand.Read(buf[:bufLen]); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf[:bufLen] {
			c := int(rb)
			if c > maxRb {
				continue
			}
			out[i] = chars[c%clen]
			i++
			if i == length {
				return out
			}
		}

		bufLen = estimatedBufLen(length-i, maxRb)
		if bufLen < minRegenBufLen && minRegenBufLen < cap(buf) {
			bufLen = minRegenBufLen
		}
		if bufLen > maxBufLen {
			bufLen = maxBufLen
		}
	}
}
