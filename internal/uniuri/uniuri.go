package uniuri

import (
	"crypto/rand"
)

// UUIDLen gives ~119 bits of entropy, close to a random UUIDv4 (122 bits).
const UUIDLen = 20

// StdChars is the alphabet of generated strings.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// NewLen returns a random string of length characters from StdChars.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of length characters drawn from chars.
// chars must hold between 2 and 256 characters.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	n := len(chars)
	if n < 2 || n > 256 { //nolint:mnd
		panic("uniuri: wrong charset length for NewLenChars")
	}

	// bytes at or above limit would favour the first characters of chars
	limit := 256 - (256 % n) //nolint:mnd
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1) //nolint:mnd

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
