// Package shared provides small helpers for handling secrets in memory
// and on screen.
package shared

import "fmt"

// WipeByteArray overwrites the contents of b with zeros. Use it to drop
// passwords from memory once they have been sent. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// MaskToken renders a credential for display without revealing it: the
// first four characters followed by the total length.
func MaskToken(token string) string {
	r := []rune(token)
	if len(r) <= 8 {
		return fmt.Sprintf("**** (%d chars)", len(r))
	}
	return fmt.Sprintf("%s**** (%d chars)", string(r[:4]), len(r))
}
