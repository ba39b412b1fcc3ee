package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// GenerateAuthToken returns an opaque token for email verification and
// password-reset records.
func GenerateAuthToken() string {
	return uuid.NewString()
}

// GenerateResetCode returns a uniformly random 4-digit code, zero-padded.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
