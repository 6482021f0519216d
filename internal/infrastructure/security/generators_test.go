package security

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureKey(t *testing.T) {
	key, err := GenerateSecureKey(64)
	require.NoError(t, err)
	assert.Len(t, key, 64)

	_, err = hex.DecodeString(key)
	assert.NoError(t, err, "key should be hex-encoded")

	other, err := GenerateSecureKey(64)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerateULID(t *testing.T) {
	id := GenerateULID()
	assert.Len(t, id, 26)
	assert.NotEqual(t, id, GenerateULID())
}
