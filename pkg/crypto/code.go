package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost for code hashes
	DefaultCost = 10

	codeSpace = 1000000 // codes are sampled from 000000-999999
)

var (
	bcryptGenerateFromCode = bcrypt.GenerateFromPassword
	randomInt              = rand.Int
)

// GenerateCode returns a uniform-random 6-digit verification code as a
// zero-padded string. crypto/rand keeps codes unpredictable regardless of
// wall-clock time; uniformity matters more than cryptographic strength here.
func GenerateCode() (string, error) {
	n, err := randomInt(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashCode hashes a verification code for storage at rest
func HashCode(code string) (string, error) {
	bytes, err := bcryptGenerateFromCode([]byte(code), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash verification code: %w", err)
	}
	return string(bytes), nil
}

// CheckCode compares a submitted code with a stored hash. The comparison is
// over the exact character string, so leading zeros are significant.
func CheckCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
