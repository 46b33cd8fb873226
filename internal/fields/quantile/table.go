package quantile

import (
	"errors"
	"fmt"
)

// Band is one row of a ThresholdTable. A nil Cutoff marks the open-ended top
// band.
type Band struct {
	Label  string   `json:"label"`
	Cutoff *float64 `json:"cutoff"`
}

// ThresholdTable is an ordered list of bands, ascending by cutoff. Tables are
// always built whole by NewThresholdTable and never patched in place.
type ThresholdTable struct {
	bands []Band
}

// Cut returns a pointer to v for use as a Band cutoff.
func Cut(v float64) *float64 { return &v }

// NewThresholdTable validates and copies the given bands: labels must be
// unique and non-empty, cutoffs non-decreasing, and only the last band may
// have a nil cutoff.
func NewThresholdTable(bands ...Band) (ThresholdTable, error) {
	if len(bands) == 0 {
		return ThresholdTable{}, errors.New("threshold table: no bands")
	}
	seen := make(map[string]bool, len(bands))
	out := make([]Band, len(bands))
	for i, b := range bands {
		if b.Label == "" {
			return ThresholdTable{}, fmt.Errorf("threshold table: band %d has no label", i)
		}
		if seen[b.Label] {
			return ThresholdTable{}, fmt.Errorf("threshold table: duplicate label %q", b.Label)
		}
		seen[b.Label] = true
		if b.Cutoff == nil && i != len(bands)-1 {
			return ThresholdTable{}, fmt.Errorf("threshold table: open band %q is not last", b.Label)
		}
		if i > 0 && b.Cutoff != nil && *b.Cutoff < *bands[i-1].Cutoff {
			return ThresholdTable{}, fmt.Errorf("threshold table: cutoff of %q (%v) below %q (%v)",
				b.Label, *b.Cutoff, bands[i-1].Label, *bands[i-1].Cutoff)
		}
		out[i] = Band{Label: b.Label}
		if b.Cutoff != nil {
			out[i].Cutoff = Cut(*b.Cutoff)
		}
	}
	return ThresholdTable{bands: out}, nil
}

// Bands returns a copy of the table rows.
func (t ThresholdTable) Bands() []Band {
	out := make([]Band, len(t.bands))
	for i, b := range t.bands {
		out[i] = Band{Label: b.Label}
		if b.Cutoff != nil {
			out[i].Cutoff = Cut(*b.Cutoff)
		}
	}
	return out
}

// Len reports the number of bands.
func (t ThresholdTable) Len() int { return len(t.bands) }

// Cutoff returns the cutoff for label. ok is false when the label is unknown
// or the band is open-ended.
func (t ThresholdTable) Cutoff(label string) (float64, bool) {
	for _, b := range t.bands {
		if b.Label == label {
			if b.Cutoff == nil {
				return 0, false
			}
			return *b.Cutoff, true
		}
	}
	return 0, false
}

// Band labels v with the first band whose cutoff is strictly greater than v.
// Values at or above every cutoff fall in the open band, or in the last band
// when the table has none.
func (t ThresholdTable) Band(v float64) string {
	for _, b := range t.bands {
		if b.Cutoff == nil || v < *b.Cutoff {
			return b.Label
		}
	}
	if len(t.bands) == 0 {
		return ""
	}
	return t.bands[len(t.bands)-1].Label
}

// BandIndex is Band returning the row index instead of the label.
func (t ThresholdTable) BandIndex(v float64) int {
	for i, b := range t.bands {
		if b.Cutoff == nil || v < *b.Cutoff {
			return i
		}
	}
	return len(t.bands) - 1
}
