package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialLenMatchesEncoding(t *testing.T) {
	// 8 bytes viram 11 caracteres em base64 URL-safe sem padding; é o
	// comprimento que o canal de jogo usa para fatiar o sufixo.
	assert.Equal(t, 11, NewIssuer(8).CredentialLen())
	assert.Equal(t, 22, NewIssuer(16).CredentialLen())
}

func TestCreateEmitsDistinctCredentials(t *testing.T) {
	issuer := NewIssuer(8)

	for i := 0; i < 500; i++ {
		tokens, err := issuer.Create()
		require.NoError(t, err)

		first := tokens.Credential(1)
		second := tokens.Credential(2)
		assert.NotEqual(t, first, second)
		assert.Len(t, first, issuer.CredentialLen())
		assert.Len(t, second, issuer.CredentialLen())
	}
}

func TestCreateSessionIDFormat(t *testing.T) {
	tokens, err := NewIssuer(8).Create()
	require.NoError(t, err)

	// 32 bytes de entropia rendem 43 caracteres sem padding.
	assert.Len(t, tokens.SessionID, 43)
	assert.NotContains(t, tokens.SessionID, "=")
	assert.NotContains(t, tokens.SessionID, "+")
	assert.NotContains(t, tokens.SessionID, "/")
}

func TestCreateSessionIDsAreUnique(t *testing.T) {
	issuer := NewIssuer(8)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		tokens, err := issuer.Create()
		require.NoError(t, err)
		assert.False(t, seen[tokens.SessionID])
		seen[tokens.SessionID] = true
	}
}

func TestCredentialAccessorIsStable(t *testing.T) {
	tokens, err := NewIssuer(8).Create()
	require.NoError(t, err)

	assert.Equal(t, tokens.Credential(1), tokens.Credential(1))
	assert.Equal(t, tokens.Credential(2), tokens.Credential(2))
}
