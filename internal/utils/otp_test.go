package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecureOTP(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		code, err := GenerateSecureOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err, "code must be numeric: %q", code)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)

		seen[code] = true
	}

	// 1000 draws from 900000 values collide rarely; all-equal would mean
	// a broken generator.
	require.Greater(t, len(seen), 900)
}
