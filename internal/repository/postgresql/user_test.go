package postgresql_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/user"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/database"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, postgresql.Migrate(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE users CASCADE")
	require.NoError(t, err)
	return db
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, user.User{Username: "biw.lead", PasswordHash: "hash", Department: "BIW"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByUsername(ctx, "biw.lead")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "BIW", got.Department)

	_, err = repo.Create(ctx, user.User{Username: "biw.lead", PasswordHash: "hash", Department: "Paint"})
	assert.True(t, errors.Is(err, user.ErrUsernameExists))

	_, err = repo.GetByUsername(ctx, "missing")
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, postgresql.Migrate(context.Background(), db))
}
