package pin

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Length is the required number of PIN digits.
const Length = 6

// ErrInvalidFormat is returned when a PIN is not exactly six digits.
var ErrInvalidFormat = errors.New("pin must be exactly 6 digits")

// Validate checks the PIN shape without touching storage. Movements call
// this before any network or database work.
func Validate(pin string) error {
	if len(pin) != Length {
		return ErrInvalidFormat
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidFormat
		}
	}
	return nil
}

// Hash hashes a plain PIN with bcrypt for storage on the owning profile.
func Hash(plain string) (string, error) {
	if err := Validate(plain); err != nil {
		return "", err
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check compares a plain PIN against a stored bcrypt hash.
func Check(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
