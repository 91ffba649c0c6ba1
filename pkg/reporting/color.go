package reporting

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a fill color for table rows.
type RGB struct {
	R, G, B int
}

// DefaultFill is the neutral gray used when a team has no usable color.
var DefaultFill = RGB{R: 204, G: 204, B: 204}

// ResolveFill parses a team color like "3671C6" or "#3671C6" into an RGB
// fill. Missing or "none" values quietly take the default; a malformed value
// also takes the default but reports an error so the caller can log it.
func ResolveFill(value string) (RGB, error) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "none") {
		return DefaultFill, nil
	}

	v = strings.TrimPrefix(v, "#")
	if len(v) != 6 {
		return DefaultFill, fmt.Errorf("team colour %q: want 6 hex digits", value)
	}

	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return DefaultFill, fmt.Errorf("team colour %q: %w", value, err)
	}
	return RGB{
		R: int(n >> 16 & 0xFF),
		G: int(n >> 8 & 0xFF),
		B: int(n & 0xFF),
	}, nil
}
