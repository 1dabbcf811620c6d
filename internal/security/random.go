package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Unambiguous alphabet: no 0/O or 1/I lookalikes.
const secretAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var errNonPositiveLength = errors.New("length must be positive")

// RandomSecret returns a cryptographically secure, unbiased token of
// the requested length, used as the fallback signing secret when no
// SECRET_KEY is configured.
func RandomSecret(length int) (string, error) {
	if length <= 0 {
		return "", errNonPositiveLength
	}

	limit := big.NewInt(int64(len(secretAlphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = secretAlphabet[position.Int64()]
	}
	return string(value), nil
}
