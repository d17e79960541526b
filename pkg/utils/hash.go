package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// Hash returns the hex md5 digest of parts joined by NUL bytes, so
// ("ab", "c") and ("a", "bc") never collide.
func Hash(parts ...string) string {
	h := md5.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
