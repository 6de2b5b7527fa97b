package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := RandomOTP()
		require.Len(t, code, 4)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestRandomTransactionID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := RandomTransactionID()
		require.Len(t, id, 10)
		for _, r := range id {
			assert.True(t, r >= '1' && r <= '9')
		}
		seen[id] = true
	}
	// Collisions across 100 draws would mean the generator is broken.
	assert.Greater(t, len(seen), 95)
}
