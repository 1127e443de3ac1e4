package seeder

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+\d+@[a-z.\-]+$`)

func TestNewCustomerRecord(t *testing.T) {
	r := newRNG(31)
	pwf := NewPasswordFactory(r, bcrypt.MinCost)

	for i := 0; i < 20; i++ {
		rec, err := newCustomerRecord(r, pwf)
		require.NoError(t, err)

		parts := strings.SplitN(rec.Name, " ", 2)
		require.Len(t, parts, 2)
		assert.Contains(t, firstNames, parts[0])
		assert.Contains(t, lastNames, parts[1])

		assert.Regexp(t, emailPattern, rec.Email)
		assert.GreaterOrEqual(t, len(rec.Phone), 10)
		assert.LessOrEqual(t, len(rec.Phone), 12)
		for _, c := range rec.Phone {
			assert.True(t, c >= '0' && c <= '9', "phone %q has non-digit", rec.Phone)
		}

		assert.NotEmpty(t, rec.Address)
		assert.True(t, validPassword(rec.Password))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(rec.Password)))
	}
}
