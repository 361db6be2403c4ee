package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/vitokorn/buy-me-a-gift/internal/database"
	"github.com/vitokorn/buy-me-a-gift/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDatabase(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("LOG_LEVEL", "error")
	return dsn
}

func TestMigrateCommandCreatesSchema(t *testing.T) {
	dsn := useTempDatabase(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate"})
	require.NoError(t, cmd.Execute())

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	defer closeDB(db)
	for _, table := range []string{"users", "product_categories", "products", "wishlists", "wishlist_products"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestCreateSuperuserCommand(t *testing.T) {
	dsn := useTempDatabase(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"createsuperuser", "--email", "admin@example.com", "--password", "s3cret"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Superuser admin@example.com created")

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	defer closeDB(db)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "admin@example.com").Error)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret", user.Password)
}

func TestCreateSuperuserRejectsMalformedEmail(t *testing.T) {
	useTempDatabase(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"createsuperuser", "--email", "not-an-email", "--password", "s3cret"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect email")
}

func TestCreateSuperuserRequiresFlags(t *testing.T) {
	useTempDatabase(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"createsuperuser", "--email", "admin@example.com"})
	assert.Error(t, cmd.Execute())
}
