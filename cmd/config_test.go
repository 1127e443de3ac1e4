package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFromEnv(t *testing.T) {
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "5433")
	t.Setenv("DATABASE_USER", "app")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_NAME", "food_ordering")

	c := connFlags{nonInteractive: true}
	cfg, err := c.resolve()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "food_ordering", cfg.Name)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestResolveFlagsWinOverEnv(t *testing.T) {
	t.Setenv("DATABASE_HOST", "env-host")
	t.Setenv("DATABASE_USER", "env-user")
	t.Setenv("DATABASE_NAME", "env-db")
	t.Setenv("DATABASE_PASSWORD", "")
	t.Setenv("PGPASSWORD", "fallback")

	c := connFlags{host: "flag-host", user: "flag-user", dbName: "flag-db", nonInteractive: true}
	cfg, err := c.resolve()
	require.NoError(t, err)

	assert.Equal(t, "flag-host", cfg.Host)
	assert.Equal(t, "flag-user", cfg.User)
	assert.Equal(t, "flag-db", cfg.Name)
	assert.Equal(t, "fallback", cfg.Password)
	assert.Equal(t, defaultPort, cfg.Port)
}

func TestResolveMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_HOST", "")
	t.Setenv("DATABASE_USER", "")
	t.Setenv("DATABASE_NAME", "")

	c := connFlags{nonInteractive: true}
	_, err := c.resolve()
	assert.Error(t, err)
}

func TestPgIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"food_ordering", `"food_ordering"`},
		{`we"ird`, `"we""ird"`},
		{"", `""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pgIdentifier(tt.in))
	}
}
