package ethutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_IsValidCid(t *testing.T) {
	require.True(t, IsValidCid("QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"))
	require.False(t, IsValidCid(""))
	require.False(t, IsValidCid("QmProof"))
	require.False(t, IsValidCid("0x1234"))
}

func Test_ContentCid(t *testing.T) {
	a, err := ContentCid([]byte("hello"))
	require.NoError(t, err)
	require.True(t, IsValidCid(a))

	b, err := ContentCid([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := ContentCid([]byte("world"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}
