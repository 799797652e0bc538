package xlsxwriter

import "fmt"

// passwordXorConstant is the fixed constant the rolling state is XORed with
// after the final rotation: 0x8000 | ('N' << 8) | 'K'.
const passwordXorConstant = 0x8000 | ('N' << 8) | 'K'

// PasswordHash computes the legacy 16-bit obfuscation of a protection
// password, reproduced bit for bit for compatibility with existing readers.
//
// The characters are folded in from last to first over a 15-bit rolling
// state: rotate left by one within the 15-bit mask, then XOR in the
// character's code point. After the loop the state is rotated once more,
// XORed with the fixed constant and with the password length, and formatted
// as uppercase hexadecimal.
//
// An empty password yields an empty string. This is a compatibility
// artifact, not a security mechanism.
func PasswordHash(password string) string {
	if password == "" {
		return ""
	}
	runes := []rune(password)
	hash := 0
	for i := len(runes) - 1; i >= 0; i-- {
		hash = ((hash >> 14) & 0x01) | ((hash << 1) & 0x7fff)
		hash ^= int(runes[i])
	}
	hash = ((hash >> 14) & 0x01) | ((hash << 1) & 0x7fff)
	hash ^= passwordXorConstant
	hash ^= len(runes)
	return fmt.Sprintf("%X", hash)
}
