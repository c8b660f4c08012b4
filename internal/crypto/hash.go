package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing latency for brute-force resistance. 10 keeps a
// hash around 50-100ms on current hardware.
const bcryptCost = 10

// HashPassword produces a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
