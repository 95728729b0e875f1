package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hongminglow/authgate/internal/models"
	"github.com/hongminglow/authgate/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreIntegration exercises the store against a live Postgres database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_AUTH_INTEGRATION") != "true" {
		t.Skip("set RUN_AUTH_INTEGRATION=true to run this integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	s, err := NewUserStore(ctx, dbURL)
	require.NoError(t, err)
	defer s.Close(ctx)

	email := fmt.Sprintf("pgtest_%d@example.com", time.Now().UnixNano())
	u, err := s.CreateUser(ctx, models.User{Name: "Pg", Email: email, PasswordHash: "h", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	got, err := s.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.CreateUser(ctx, models.User{Name: "Pg2", Email: email, PasswordHash: "h", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}
