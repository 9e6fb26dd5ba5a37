package lfscheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseByteSize(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"8192", 8192, false},
		{"0", 0, false},
		{"64K", 64 * 1024, false},
		{"64k", 64 * 1024, false},
		{"2M", 2 * 1024 * 1024, false},
		{"1G", 1024 * 1024 * 1024, false},
		{"512KB", 512 * 1024, false},
		{"1.5K", 1536, false},
		{"  16K  ", 16 * 1024, false},
		{"100B", 100, false},
		{"", 0, true},
		{"K", 0, true},
		{"12X", 0, true},
		{"lots", 0, true},
	}

	for _, tc := range testCases {
		size, err := ParseByteSize(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		assert.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, size, "input %q", tc.input)
	}
}
