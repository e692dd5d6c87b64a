package cryptox_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/coachforge/coachforge/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep the generated pepper out of the working tree.
	dir, err := os.MkdirTemp("", "cryptox-test-")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestGenerateToken(t *testing.T) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, cryptox.TokenSize256)

	other, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestGenerateTokenRejectsNonPositiveSize(t *testing.T) {
	_, err := cryptox.GenerateToken(0)
	require.Error(t, err)

	_, err = cryptox.GenerateToken(-1)
	require.Error(t, err)
}

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	token := cryptox.MustGenerateToken(cryptox.TokenSize256)

	first := cryptox.FingerprintToken(token)
	second := cryptox.FingerprintToken(token)
	require.Equal(t, first, second)

	// A different token must not collide.
	require.NotEqual(t, first, cryptox.FingerprintToken(token+"x"))

	// The fingerprint never echoes the raw token.
	require.NotContains(t, first, token)
}
