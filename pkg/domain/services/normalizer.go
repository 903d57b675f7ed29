package services

import "strings"

// DefaultMarkers are the prefixes that start a canonical product description
var DefaultMarkers = []string{"CB", "FIO"}

// DescriptionNormalizer cuts noisy descriptions down to their canonical part
type DescriptionNormalizer struct {
	markers []string
}

// NewDescriptionNormalizer creates a normalizer checking markers in order.
// With no markers it falls back to DefaultMarkers.
func NewDescriptionNormalizer(markers ...string) *DescriptionNormalizer {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	cleaned := make([]string, 0, len(markers))
	for _, m := range markers {
		if m != "" {
			cleaned = append(cleaned, m)
		}
	}
	return &DescriptionNormalizer{markers: cleaned}
}

// Normalize trims raw and returns the substring starting at the first
// occurrence of the first marker present. Matching is case-sensitive. When no
// marker occurs the trimmed input is returned with ok set to false.
func (n *DescriptionNormalizer) Normalize(raw string) (normalized string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	for _, marker := range n.markers {
		if i := strings.Index(trimmed, marker); i >= 0 {
			return trimmed[i:], true
		}
	}
	return trimmed, false
}

// Markers returns the configured markers in check order
func (n *DescriptionNormalizer) Markers() []string {
	return n.markers
}
