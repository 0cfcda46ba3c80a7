package shared

import (
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey_IsReversedUUIDHex(t *testing.T) {
	fixed := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")
	orig := newID
	newID = func() uuid.UUID { return fixed }
	defer func() { newID = orig }()

	key := GenerateKey()
	assert.Equal(t, "ffeeddccbbaa99887766554433221100", key)
}

func TestGenerateKey_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		k := GenerateKey()
		require.Len(t, k, 32)
		_, err := hex.DecodeString(k)
		require.NoError(t, err)
		_, dup := seen[k]
		require.False(t, dup, "duplicate key %s", k)
		seen[k] = struct{}{}
	}
}

func TestReverse(t *testing.T) {
	assert.Equal(t, "", Reverse(""))
	assert.Equal(t, "a", Reverse("a"))
	assert.Equal(t, "cba", Reverse("abc"))
	assert.Equal(t, "abc", Reverse(Reverse("abc")))
}
