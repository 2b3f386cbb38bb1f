package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for newly created hashes; existing records
// keep the cost they were hashed with.
const bcryptCost = 10

// HashPassword returns a one-way salted hash of password. The plaintext is
// never stored.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether candidate matches the stored hash.
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
