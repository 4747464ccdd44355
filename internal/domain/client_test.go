package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func TestIsMinorAt(t *testing.T) {
	birth := mustDate(t, "2008-03-10")

	assert.True(t, IsMinorAt(birth, mustDate(t, "2026-03-09")))
	// The 18th birthday itself counts as adult.
	assert.False(t, IsMinorAt(birth, mustDate(t, "2026-03-10")))
	assert.False(t, IsMinorAt(birth, mustDate(t, "2026-03-11")))
}
