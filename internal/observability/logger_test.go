package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(false, false)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = NewLogger(true, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1)) // debug level enabled
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdefgh", 3))
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "trimmed", Truncate("  trimmed  ", 20))

	long := strings.Repeat("x", 100)
	assert.Len(t, Truncate(long, 50), 53)
}
