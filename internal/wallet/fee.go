package wallet

import (
	"strconv"
	"strings"
)

// ParseFee turns a display fee like "€25", "$10 entry" or "Free" into a
// whole-unit amount. "free" (any case) is 0. Otherwise the first run of
// digits is parsed; a string with no digits also yields 0, so an
// unparseable fee is indistinguishable from a free one. Callers that care
// should log the input.
func ParseFee(feeText string) int {
	if strings.EqualFold(strings.TrimSpace(feeText), "free") {
		return 0
	}

	start := -1
	for i, r := range feeText {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(feeText[start:i]) //nolint:errcheck // digits only
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(feeText[start:]) //nolint:errcheck // digits only
		return n
	}
	return 0
}
