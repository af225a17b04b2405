package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

// unsetEnv clears key for the test and restores it afterwards. godotenv
// never overrides a variable that is already set, even to "".
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.True(t, cfg.SeedUsers)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "ko", cfg.DefaultLocale)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.False(t, cfg.AuthEnabled())
}

func TestFromLookup_PostgresFromParts(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"STORE":       "Postgres",
		"DB_USER":     "app",
		"DB_PASSWORD": "secret",
		"DB_HOST":     "db",
		"DB_NAME":     "restful",
	}))
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://app:secret@db:5432/restful", cfg.DatabaseURL)
}

func TestFromLookup_DatabaseURLWins(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"STORE":        "postgres",
		"DATABASE_URL": "postgres://u:p@h:1/d",
		"DB_HOST":      "ignored",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:1/d", cfg.DatabaseURL)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":                "9090",
		"SEED_USERS":          "false",
		"TOKEN_TTL":           "15m",
		"CORS_ORIGINS":        "http://a.test, http://b.test ,",
		"JWT_SECRET":          "s",
		"ADMIN_PASSWORD_HASH": testHash(t, "s3cret"),
		"LOG_FORMAT":          "json",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.SeedUsers)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.AuthEnabled())
}

func TestFromLookup_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"STORE": "mongo"}},
		{"bad seed flag", map[string]string{"SEED_USERS": "maybe"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "soon"}},
		{"negative ttl", map[string]string{"TOKEN_TTL": "-1h"}},
		{"expanded hash", map[string]string{"ADMIN_PASSWORD_HASH": "a$lzto5wrVO2abcdefghijklmnopqrstuv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("RESTFUL_USERS_TEST_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("RESTFUL_USERS_TEST_KEY") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("RESTFUL_USERS_TEST_KEY"))
}

func TestLoadDotEnv_QuotedBcryptHashSurvives(t *testing.T) {
	unsetEnv(t, "ADMIN_PASSWORD_HASH")
	hash := testHash(t, "s3cret")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ADMIN_PASSWORD_HASH='"+hash+"'\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, hash, cfg.AdminPasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte("s3cret")))
}

func TestLoadDotEnv_UnquotedBcryptHashFailsFast(t *testing.T) {
	unsetEnv(t, "ADMIN_PASSWORD_HASH")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ADMIN_PASSWORD_HASH="+testHash(t, "s3cret")+"\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	_, err := Load()
	assert.ErrorContains(t, err, "ADMIN_PASSWORD_HASH")
}
