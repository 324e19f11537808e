package testutil

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRandomPort(t *testing.T) {
	seen := make(map[int]bool)
	for range 20 {
		p := GetRandomPort(t)
		assert.Positive(t, p)
		assert.False(t, seen[p], "port %d handed out twice", p)
		seen[p] = true
	}
}

func TestGetRandomListeningAddr(t *testing.T) {
	addr := GetRandomListeningAddr(t)
	l, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}

func TestThreadSafeBuffer(t *testing.T) {
	var b ThreadSafeBuffer
	_, err := b.Write([]byte("tool loaded"))
	require.NoError(t, err)
	assert.True(t, b.Contains("loaded"))
	assert.Equal(t, "tool loaded", b.String())
}
