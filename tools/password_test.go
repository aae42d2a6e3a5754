package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordEncryptAndCompare(t *testing.T) {
	hash := PasswordEncrypt("Secret-123")
	require.NotEmpty(t, hash)
	require.NotEqual(t, "Secret-123", hash)

	require.True(t, PasswordCompare("Secret-123", hash))
	require.False(t, PasswordCompare("secret-123", hash))
	require.False(t, PasswordCompare("", hash))
}
