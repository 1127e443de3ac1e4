package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGeneratePassword(t *testing.T) {
	f := NewPasswordFactory(newRNG(1), bcrypt.MinCost)

	for i := 0; i < 50; i++ {
		p := f.Generate()
		assert.Len(t, p, passwordLength)
		assert.True(t, validPassword(p), "password %q missing a required class", p)
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes", "aB3!efghijkl", true},
		{"no uppercase", "ab3!efghijkl", false},
		{"no lowercase", "AB3!EFGHIJKL", false},
		{"no digit", "aBc!efghijkl", false},
		{"no symbol", "aB3defghijkl", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validPassword(tt.password))
		})
	}
}

func TestHashMatchesPassword(t *testing.T) {
	f := NewPasswordFactory(newRNG(1), bcrypt.MinCost)

	password := f.Generate()
	hash, err := f.Hash(password)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}
