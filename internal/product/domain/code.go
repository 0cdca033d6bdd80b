package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CodePrefix = "P"
	CodeWidth  = 4

	// ProductCodeSequence names the counter row in product_code_sequences.
	ProductCodeSequence = "product_code"
)

// FormatCode renders n as P followed by at least four digits. Numbers past
// 9999 widen the code (P10000) rather than wrapping.
func FormatCode(n int64) string {
	return fmt.Sprintf("%s%0*d", CodePrefix, CodeWidth, n)
}

// ParseCode extracts the numeric part of a product code.
func ParseCode(code string) (int64, bool) {
	digits, ok := strings.CutPrefix(strings.TrimSpace(code), CodePrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
