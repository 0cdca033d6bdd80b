package masking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a****@example.com", MaskEmail("alice@example.com"))
	assert.Equal(t, "", MaskEmail("  "))
	assert.Equal(t, "****.com", MaskEmail("@foo.com"))
}

func TestMaskTail(t *testing.T) {
	assert.Equal(t, "****5678", MaskTail("012345678"))
	assert.Equal(t, "****", MaskTail("123"))
}

func TestMaskFields(t *testing.T) {
	out := MaskFields(map[string]any{
		"email":      "bob@shop.kh",
		"phone":      "+855 12 345 678",
		"first_name": "Bob",
		"count":      3,
	}, "email", "phone")

	assert.Equal(t, map[string]any{
		"email":      "b****@shop.kh",
		"phone":      "****5678",
		"first_name": "Bob",
		"count":      3,
	}, out)
	assert.Nil(t, MaskFields(nil, "email"))
}
