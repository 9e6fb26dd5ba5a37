package lfscheck

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseByteSize parses a human-readable size string such as "8192",
// "64K" or "2M" into a byte count. Suffixes are powers of 1024 and
// case-insensitive; "B"/"KB"/"MB"/"GB" are accepted as well.
func ParseByteSize(sizeStr string) (int, error) {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	numEnd := 0
	for numEnd < len(sizeStr) {
		c := sizeStr[numEnd]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		numEnd++
	}
	if numEnd == 0 {
		return 0, fmt.Errorf("no numeric part in size string %q", sizeStr)
	}

	num, err := strconv.ParseFloat(sizeStr[:numEnd], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric part in size string %q: %w", sizeStr, err)
	}

	var multiplier float64
	switch sizeStr[numEnd:] {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size suffix in %q", sizeStr)
	}

	size := int(num * multiplier)
	if size < 0 {
		return 0, fmt.Errorf("size %q overflows", sizeStr)
	}
	return size, nil
}
