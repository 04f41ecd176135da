package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	secret, hash, err := Generate()
	require.NoError(t, err)

	assert.NotEmpty(t, secret)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, secret, hash)
	assert.True(t, Verify(hash, secret))
}

func TestGenerateUnique(t *testing.T) {
	first, _, err := Generate()
	require.NoError(t, err)
	second, _, err := Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	_, hash, err := Generate()
	require.NoError(t, err)

	assert.False(t, Verify(hash, "wrong-secret"))
	assert.False(t, Verify(hash, ""))
	assert.False(t, Verify("not-a-bcrypt-hash", "anything"))
}
