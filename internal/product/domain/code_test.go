package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "P0001", FormatCode(1))
	assert.Equal(t, "P0043", FormatCode(43))
	assert.Equal(t, "P9999", FormatCode(9999))
	assert.Equal(t, "P10000", FormatCode(10000))
}

func TestParseCode(t *testing.T) {
	n, ok := ParseCode("P0042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = ParseCode("P10000")
	assert.True(t, ok)
	assert.Equal(t, int64(10000), n)

	for _, bad := range []string{"", "P", "X0001", "P00A1", "P-001"} {
		_, ok := ParseCode(bad)
		assert.Falsef(t, ok, "code %q", bad)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 999, 1234, 9999, 123456} {
		got, ok := ParseCode(FormatCode(n))
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
}
