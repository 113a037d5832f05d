package helpers

import "testing"

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{1234567, "$1,234,567"},
		{-98000, "-$98,000"},
	}

	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
