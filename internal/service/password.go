package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the seeded hashes were generated with.
const bcryptCost = 12

// HashPassword generates a salted bcrypt hash of the plain-text password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash with a plain-text password.
// A malformed hash counts as a mismatch.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
