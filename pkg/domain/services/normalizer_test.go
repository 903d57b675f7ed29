package services

import "testing"

func TestDescriptionNormalizer_Normalize(t *testing.T) {
	normalizer := NewDescriptionNormalizer()

	testCases := []struct {
		name       string
		raw        string
		expected   string
		expectedOK bool
	}{
		{"CB marker", "XYZ CB-123", "CB-123", true},
		{"FIO marker", "ABC FIO-9", "FIO-9", true},
		{"no marker", "no marker", "no marker", false},
		{"surrounding whitespace", "   no marker  ", "no marker", false},
		{"empty", "", "", false},
		{"CB wins over earlier FIO", "FIO-1 CB-2", "CB-2", true},
		{"first CB occurrence", "a CB-1 CB-2", "CB-1 CB-2", true},
		{"case sensitive", "xyz cb-123", "xyz cb-123", false},
		{"marker at start", "CB", "CB", true},
		{"trimmed before slicing", "  FIO 2mm  ", "FIO 2mm", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := normalizer.Normalize(tc.raw)
			if got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
			if ok != tc.expectedOK {
				t.Errorf("Expected ok=%v, got %v", tc.expectedOK, ok)
			}
		})
	}
}

func TestDescriptionNormalizer_CustomMarkers(t *testing.T) {
	normalizer := NewDescriptionNormalizer("WIRE", "", "CB")

	if len(normalizer.Markers()) != 2 {
		t.Fatalf("Expected empty markers to be dropped, got %v", normalizer.Markers())
	}

	got, ok := normalizer.Normalize("x CB-1 WIRE-2")
	if !ok || got != "WIRE-2" {
		t.Errorf("Expected 'WIRE-2' from first configured marker, got '%s' (ok=%v)", got, ok)
	}
}
