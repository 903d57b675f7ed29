package xlsx

import "testing"

func TestIsDateFormatCode(t *testing.T) {
	testCases := []struct {
		code     string
		expected bool
	}{
		{"dd/mm/yyyy", true},
		{"yyyy-mm-dd hh:mm", true},
		{"[$-416]d-mmm-yy;@", true},
		{"0.00", false},
		{"#,##0", false},
		{`"days" 0`, false},
		{"[Red]0.00", false},
		{"mm:ss", false},
		{`0\d`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			if got := isDateFormatCode(tc.code); got != tc.expected {
				t.Errorf("Expected %v for %q, got %v", tc.expected, tc.code, got)
			}
		})
	}
}
