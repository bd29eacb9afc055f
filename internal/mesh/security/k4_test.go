package security

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// Mesh Profile 8.1.1 s1 SALT generation function
func TestS1SampleData(t *testing.T) {
	salt, err := S1([]byte("test"))
	require.NoError(t, err)
	assert.Equal(t, "b73cefbd641ef2ea598c2b6efb62f79c", hex.EncodeToString(salt))
}

// Mesh Profile 8.1.6 k4 function
func TestK4SampleData(t *testing.T) {
	aid, err := K4(mustHex(t, "3216d1509884b533248541792b877f98"))
	require.NoError(t, err)
	assert.Equal(t, byte(0x38), aid)
}

func TestK4Deterministic(t *testing.T) {
	key := make([]byte, KeySize)
	a, err := K4(key)
	require.NoError(t, err)
	b, err := K4(key)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Zero(t, a&^AIDMask, "AID 只占低6位")
}

func TestK4InvalidKey(t *testing.T) {
	for _, key := range [][]byte{nil, {}, make([]byte, 15), make([]byte, 32)} {
		_, err := K4(key)
		assert.ErrorIs(t, err, ErrInvalidKey)
	}
}

func TestK4DoesNotMutateKey(t *testing.T) {
	key := mustHex(t, "63964771734fbd76e3b40519d1d94a48")
	orig := append([]byte(nil), key...)
	_, err := K4(key)
	require.NoError(t, err)
	assert.Equal(t, orig, key)
}
