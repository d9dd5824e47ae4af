package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric input field. It accepts JSON numbers and numeric
// strings; the empty string reads as zero.
type Number float64

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// NumberOf is a convenience for building patches in code.
func NumberOf(f float64) *Number {
	n := Number(f)
	return &n
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		*n = 0
		return nil
	}

	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("%w: %s", ErrNotANumber, text)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		text = s
	}

	f, err := ParseNumber(text)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// ParseNumber parses a decimal number, rejecting NaN and infinities.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return f, nil
}
