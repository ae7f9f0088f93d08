package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampInt(t *testing.T) {
	tests := []struct {
		name     string
		v        int
		lo       int
		hi       int
		expected int
	}{
		{name: "within range", v: 50, lo: 1, hi: 100, expected: 50},
		{name: "below lower bound", v: 0, lo: 1, hi: 100, expected: 1},
		{name: "negative input", v: -20, lo: 1, hi: 100, expected: 1},
		{name: "above upper bound", v: 500, lo: 1, hi: 100, expected: 100},
		{name: "at lower bound", v: 1, lo: 1, hi: 100, expected: 1},
		{name: "at upper bound", v: 100, lo: 1, hi: 100, expected: 100},
		{name: "timeout duration above max", v: 3000000, lo: 1, hi: 2419200, expected: 2419200},
		{name: "timeout duration zero", v: 0, lo: 1, hi: 2419200, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampInt(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestTruncateString(t *testing.T) {
	t.Run("short string unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateString("hello", 1950))
	})

	t.Run("long string truncated to limit", func(t *testing.T) {
		long := strings.Repeat("a", 3000)
		result := TruncateString(long, 1950)
		assert.Len(t, result, 1950)
	})

	t.Run("truncation counts runes not bytes", func(t *testing.T) {
		long := strings.Repeat("あ", 100)
		result := TruncateString(long, 10)
		assert.Equal(t, strings.Repeat("あ", 10), result)
	})

	t.Run("exact length unchanged", func(t *testing.T) {
		s := strings.Repeat("x", 10)
		assert.Equal(t, s, TruncateString(s, 10))
	})
}
