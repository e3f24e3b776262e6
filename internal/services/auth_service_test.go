package services

import (
	"strings"
	"testing"

	"github.com/acquisitions/users-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	return db
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"), "expected a bcrypt hash")

	ok, err := CheckPassword("secret1", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	// Mismatch is a false result, not an error
	ok, err = CheckPassword("wrong-password", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashAndCheckPasswordAtMaxLength(t *testing.T) {
	// 255 characters is the longest password the schema accepts; it is well
	// past bcrypt's 72-byte input limit and must still round-trip.
	long := strings.Repeat("a", 254) + "!"

	hashed, err := HashPassword(long)
	require.NoError(t, err)

	ok, err := CheckPassword(long, hashed)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	_, err := CheckPassword("secret1", "not-a-bcrypt-hash")
	assert.ErrorIs(t, err, ErrHashingFailed)
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db)

	user, err := auth.Register("Alice", "alice@example.com", "secret1", models.RoleUser)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.Password, "returned user must not carry the hash")

	// The stored row carries a hash, never the plaintext
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "secret1", stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db)

	_, err := auth.Register("Alice", "alice@example.com", "secret1", models.RoleUser)
	require.NoError(t, err)

	_, err = auth.Register("Other Alice", "alice@example.com", "secret2", models.RoleUser)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db)

	created, err := auth.Register("Alice", "alice@example.com", "secret1", models.RoleUser)
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := auth.Authenticate("alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Empty(t, user.Password)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Authenticate("alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		_, err := auth.Authenticate("nobody@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegisterThenAuthenticateLongPassword(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db)

	long := strings.Repeat("p4ssw0rd-", 28) + "end" // 255 characters

	_, err := auth.Register("Carol", "carol@example.com", long, models.RoleUser)
	require.NoError(t, err)

	user, err := auth.Authenticate("carol@example.com", long)
	require.NoError(t, err)
	assert.Equal(t, "Carol", user.Name)
}

func TestRegisterThenAuthenticateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db)

	_, err := auth.Register("Bob", "bob@example.com", "hunter22", models.RoleAdmin)
	require.NoError(t, err)

	user, err := auth.Authenticate("bob@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}
