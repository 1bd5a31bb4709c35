package identity

import (
	"crypto/rand"
	"math/big"
)

// secretAlphabet mixes cases, digits and punctuation so generated secrets pass
// the strength policy the provider itself enforces.
const secretAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!#$%&*+-="

const secretLength = 16

// generateSecret produces a random password for credential resets.
func generateSecret() (string, error) {
	secret := make([]byte, secretLength)
	max := big.NewInt(int64(len(secretAlphabet)))
	for i := range secret {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		secret[i] = secretAlphabet[n.Int64()]
	}

	return string(secret), nil
}
