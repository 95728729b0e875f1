package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("MONGODB_USERS_COLLECTION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddress())
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "users", cfg.MongoUsersCollection)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "  ")
	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadPostgresNeedsDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "redis")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadBcryptCostBounds(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("BCRYPT_COST", "2")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "nope")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "12")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadParsesOriginsAndTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("JWT_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("BCRYPT_COST", "")

	for _, v := range []string{"abc", "0", "-5", "1.5"} {
		t.Setenv("JWT_TTL_MINUTES", v)
		_, err := Load()
		assert.Error(t, err, "JWT_TTL_MINUTES=%q", v)
	}
}
