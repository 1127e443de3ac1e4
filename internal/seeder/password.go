package seeder

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordLength  = 12
	passwordLower   = "abcdefghijklmnopqrstuvwxyz"
	passwordUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
	passwordSymbols = "!@#$%^&*()-_=+"
)

var passwordAlphabet = passwordLower + passwordUpper + passwordDigits + passwordSymbols

// PasswordFactory generates complexity-constrained random passwords and their
// bcrypt hashes.
type PasswordFactory struct {
	rng  *rng
	cost int
}

func NewPasswordFactory(r *rng, cost int) *PasswordFactory {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordFactory{rng: r, cost: cost}
}

// Generate draws 12-character candidates until one contains at least one
// lowercase letter, one uppercase letter, one digit and one symbol. There is
// no retry bound; with this alphabet rejection is rare enough not to matter.
func (f *PasswordFactory) Generate() string {
	buf := make([]byte, passwordLength)
	for {
		for i := range buf {
			buf[i] = passwordAlphabet[f.rng.intn(len(passwordAlphabet))]
		}
		candidate := string(buf)
		if validPassword(candidate) {
			return candidate
		}
	}
}

func validPassword(s string) bool {
	return strings.ContainsAny(s, passwordLower) &&
		strings.ContainsAny(s, passwordUpper) &&
		strings.ContainsAny(s, passwordDigits) &&
		strings.ContainsAny(s, passwordSymbols)
}

// Hash applies a salted bcrypt hash at the factory's cost factor.
func (f *PasswordFactory) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), f.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}
