package utils

import "golang.org/x/crypto/bcrypt"

// cost 12 lands around a quarter second per hash on current hardware
const bcryptCost = 12

// HashPassword derives the stored form of an account password. bcrypt
// itself rejects inputs over 72 bytes.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	return string(b), err
}

// CheckPassword reports whether pw matches the stored hash.
func CheckPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
