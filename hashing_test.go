package captable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordDeterministic(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret-password1", "app-secret")
	assert.NoError(t, err)

	second, err := HashPassword("secret-password1", "app-secret")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, "secret-password1", first)
	assert.Len(t, first, digestKeyLength*2)
}

func TestHashPasswordSecretChangesDigest(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret-password1", "app-secret")
	assert.NoError(t, err)

	second, err := HashPassword("secret-password1", "other-secret")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPasswordEmpty(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("", "app-secret")
	assert.ErrorIs(t, err, ErrNoEmptyString)
}

func TestComparePasswordAndHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret-password1", "app-secret")
	assert.NoError(t, err)

	assert.NoError(t, ComparePasswordAndHash("secret-password1", hash, "app-secret"))

	err = ComparePasswordAndHash("wrong-password1", hash, "app-secret")
	assert.ErrorIs(t, err, ErrMismatchedHashAndPassword)

	err = ComparePasswordAndHash("secret-password1", hash, "other-secret")
	assert.ErrorIs(t, err, ErrMismatchedHashAndPassword)
}
